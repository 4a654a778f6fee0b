package main

import (
	"fmt"
	"math"

	"github.com/phanxgames/reveal"
)

const (
	heroScene = "https://prod.spline.design/VJLoxp84lCdVfdZu/scene.splinecode"
	lineH     = 16 // debug font line height
	pad       = 24
)

var (
	colSlate950 = reveal.Color{R: 0.008, G: 0.024, B: 0.09, A: 1}
	colSlate900 = reveal.Color{R: 0.06, G: 0.09, B: 0.16, A: 1}
	colNav      = reveal.Color{R: 0.06, G: 0.09, B: 0.16, A: 0.85}
	colPanel    = reveal.Color{R: 1, G: 1, B: 1, A: 0.05}
	colIndigo   = reveal.Color{R: 0.39, G: 0.4, B: 0.95, A: 0.35}
	colCyan     = reveal.Color{R: 0.02, G: 0.71, B: 0.83, A: 0.3}
	colEmerald  = reveal.Color{R: 0.2, G: 0.83, B: 0.6, A: 0.3}
	colPink     = reveal.Color{R: 0.93, G: 0.28, B: 0.6, A: 0.3}
	colWhite    = reveal.Color{R: 1, G: 1, B: 1, A: 1}
	colBar      = reveal.Color{R: 0.4, G: 0.83, B: 0.93, A: 1}
)

// site holds the nodes whose layout depends on the window size.
type site struct {
	page *reveal.Page

	bar      *reveal.Node
	barSub   *reveal.Subscription
	nav      *reveal.Node
	navLinks *reveal.Node

	hero, about, gallery, cta, contact, footer *reveal.Node

	heroText  *reveal.Node
	heroEmbed *reveal.Node

	aboutInner *reveal.Node
	aboutTiles []*reveal.Node

	galleryHead *reveal.Node
	cards       []*reveal.Node

	ctaInner *reveal.Node

	form   *reveal.Node
	fields []*reveal.Node
}

func buildSite(page *reveal.Page) *site {
	s := &site{page: page}
	root := page.Root()

	// Sections first so fixed chrome is drawn on top.
	s.hero = s.buildHero()
	s.about = s.buildAbout()
	s.gallery = s.buildGallery()
	s.cta = s.buildCTA()
	s.contact = s.buildContact()
	s.footer = reveal.NewBox("footer", 0, 96, colSlate950)
	s.footer.AddChild(reveal.NewText("footer-copy", "(c) BrandCraft Studio. All rights reserved.", 400, lineH))
	for _, n := range []*reveal.Node{s.hero, s.about, s.gallery, s.cta, s.contact, s.footer} {
		root.AddChild(n)
	}

	s.nav = reveal.NewBox("nav", 0, reveal.NavOffset, colNav)
	s.nav.Fixed = true
	logo := reveal.NewText("logo", "BrandCraft", 120, lineH)
	logo.SetPosition(pad, (reveal.NavOffset-lineH)/2)
	s.nav.AddChild(logo)
	s.navLinks = reveal.NewText("nav-links", "[1] Top  [2] About  [3] Gallery  [4] Services  [5] Contact", 460, lineH)
	s.nav.AddChild(s.navLinks)
	root.AddChild(s.nav)

	s.bar = reveal.NewBox("progress", 0, 4, colBar)
	s.bar.Fixed = true
	root.AddChild(s.bar)

	return s
}

func (s *site) buildHero() *reveal.Node {
	hero := reveal.NewContainer("hero")
	s.heroText = reveal.NewContainer("hero-copy")
	s.heroText.AddChild(reveal.NewText("hero-kicker", "BRAND DESIGNER - VISUAL IDENTITY - MOTION", 400, lineH))
	s.heroText.AddChild(reveal.NewText("hero-title", "Designing brands\nthat move people", 400, 3*lineH, "hero-heading"))
	s.heroText.AddChild(reveal.NewText("hero-body",
		"I craft playful, modern identities and immersive visuals\nfor tech-forward companies. Let's make your brand unforgettable.",
		480, 2*lineH, "hero-sub"))
	ctas := reveal.NewContainer("hero-actions", "hero-cta")
	ctas.SetSize(320, 44)
	see := reveal.NewBox("see-work", 140, 44, colWhite)
	ctas.AddChild(see)
	touch := reveal.NewBox("get-in-touch", 140, 44, colPanel)
	touch.SetPosition(160, 0)
	ctas.AddChild(touch)
	s.heroText.AddChild(ctas)
	hero.AddChild(s.heroText)

	s.heroEmbed = reveal.NewEmbed("hero-scene", heroScene, 0, 0)
	hero.AddChild(s.heroEmbed)
	return hero
}

func (s *site) buildAbout() *reveal.Node {
	about := reveal.NewBox("about", 0, 0, colSlate900)
	s.aboutInner = reveal.NewContainer("about-inner")
	s.aboutInner.AddChild(reveal.NewText("about-title", "Playful strategy. Serious craft.", 400, 2*lineH, "fade-up"))
	s.aboutInner.AddChild(reveal.NewText("about-body",
		"I bring a motion-first mindset to brand systems: every logo,\ncolor and shape is designed to feel alive across screens.",
		480, 3*lineH, "fade-up"))
	s.aboutInner.AddChild(reveal.NewText("about-skills",
		"Visual Identity / Art Direction / Motion & Interactions / Web & Social Design",
		480, 2*lineH, "fade-up"))
	for i, c := range []reveal.Color{colIndigo, colEmerald, colPink} {
		tile := reveal.NewBox(fmt.Sprintf("about-tile-%d", i+1), 0, 0, c, "fade-up")
		s.aboutTiles = append(s.aboutTiles, tile)
		s.aboutInner.AddChild(tile)
	}
	about.AddChild(s.aboutInner)
	return about
}

func (s *site) buildGallery() *reveal.Node {
	gallery := reveal.NewContainer("gallery")
	s.galleryHead = reveal.NewText("gallery-title",
		"Selected Work\nA mix of identity systems, motion studies, and playful brand worlds.", 600, 3*lineH)
	gallery.AddChild(s.galleryHead)
	for i := 0; i < 8; i++ {
		c := colIndigo
		switch i % 3 {
		case 1:
			c = colPink
		case 2:
			c = colEmerald
		}
		tag := "Identity"
		if i%2 == 1 {
			tag = "Motion"
		}
		card := reveal.NewBox(fmt.Sprintf("project-%d", i+1), 0, 0, colPanel, "card")
		art := reveal.NewBox("art", 0, 0, c)
		card.AddChild(art)
		card.AddChild(reveal.NewText("caption", fmt.Sprintf("Project %d\n%s", i+1, tag), 200, 2*lineH))
		s.cards = append(s.cards, card)
		gallery.AddChild(card)
	}
	return gallery
}

func (s *site) buildCTA() *reveal.Node {
	cta := reveal.NewBox("cta", 0, 0, colIndigo)
	s.ctaInner = reveal.NewContainer("cta-inner")
	s.ctaInner.AddChild(reveal.NewText("cta-title", "Let's build a brand with real momentum", 400, lineH))
	s.ctaInner.AddChild(reveal.NewText("cta-body",
		"Strategy, identity, and motion design packaged for startups and creative teams.", 520, lineH))
	book := reveal.NewBox("book-call", 140, 44, colWhite)
	s.ctaInner.AddChild(book)
	cta.AddChild(s.ctaInner)
	return cta
}

func (s *site) buildContact() *reveal.Node {
	contact := reveal.NewBox("contact", 0, 0, colSlate900)
	contact.AddChild(reveal.NewText("contact-title", "Contact\nTell me a little about your project and timeline.", 480, 2*lineH))
	s.form = reveal.NewContainer("contact-form")
	for _, label := range []string{"Your name", "Email", "Company / Brand", "Project details"} {
		field := reveal.NewBox("field-"+label, 0, 44, colPanel, "field")
		field.AddChild(reveal.NewText("placeholder", label, 200, lineH))
		s.fields = append(s.fields, field)
		s.form.AddChild(field)
	}
	s.form.AddChild(reveal.NewBox("send", 160, 44, colWhite))
	contact.AddChild(s.form)
	contact.AddChild(reveal.NewText("contact-links",
		"hello@brandcraft.studio   Instagram   LinkedIn   +1 (555) 123-4567", 560, lineH))
	return contact
}

// layout positions every section for a w x h window. Sections are at least
// one screen tall; the gallery switches between 1, 2 and 3 columns.
func (s *site) layout(w, h float64) {
	inner := math.Min(w-2*pad, 1120)
	left := (w - inner) / 2
	y := 0.0

	// Hero: copy on the left, embed on the right when wide enough.
	heroH := math.Max(h, 640)
	s.hero.SetPosition(0, y)
	s.hero.SetSize(w, heroH)
	s.heroText.SetPosition(left, 140)
	stackY := 0.0
	for _, c := range s.heroText.Children() {
		c.SetPosition(0, stackY)
		stackY += c.Height + pad
	}
	s.heroText.SetSize(inner/2, stackY)
	if w >= 1024 {
		s.heroEmbed.SetPosition(w/2, reveal.NavOffset)
		s.heroEmbed.SetSize(w/2-pad, heroH*0.85)
	} else {
		s.heroEmbed.SetPosition(left, 140+stackY)
		s.heroEmbed.SetSize(inner, heroH*0.6)
		heroH = math.Max(heroH, 140+stackY+heroH*0.6+pad)
		s.hero.SetSize(w, heroH)
	}
	y += heroH

	// About: text column plus a column of tiles on wide screens.
	s.about.SetPosition(0, y)
	s.aboutInner.SetPosition(left, 96)
	colW := inner
	if w >= 768 {
		colW = (inner - 48) / 2
	}
	textY := 0.0
	for _, c := range s.aboutInner.Children()[:3] {
		c.SetPosition(0, textY)
		textY += c.Height + pad
	}
	tileX, tileY := 0.0, textY
	if w >= 768 {
		tileX, tileY = colW+48, 0
	}
	tileH := colW * 10 / 16 / 2
	for _, t := range s.aboutTiles {
		t.SetPosition(tileX, tileY)
		t.SetSize(colW, tileH)
		tileY += tileH + pad
	}
	aboutH := math.Max(h, 96+math.Max(textY, tileY)+96)
	s.aboutInner.SetSize(inner, aboutH-192)
	s.about.SetSize(w, aboutH)
	y += aboutH

	// Gallery grid.
	cols := 1
	switch {
	case w >= 1024:
		cols = 3
	case w >= 640:
		cols = 2
	}
	s.gallery.SetPosition(0, y)
	s.galleryHead.SetPosition(left, 96)
	cardW := (inner - float64(cols-1)*pad) / float64(cols)
	artH := cardW * 3 / 4
	cardH := artH + 3*lineH + pad
	gridY := 96 + s.galleryHead.Height + 40
	for i, card := range s.cards {
		col, row := i%cols, i/cols
		card.SetPosition(left+float64(col)*(cardW+pad), gridY+float64(row)*(cardH+pad))
		card.SetSize(cardW, cardH)
		card.Children()[0].SetSize(cardW, artH)
		card.Children()[1].SetPosition(16, artH+12)
	}
	rows := (len(s.cards) + cols - 1) / cols
	galleryH := math.Max(h, gridY+float64(rows)*(cardH+pad)+96)
	s.gallery.SetSize(w, galleryH)
	y += galleryH

	// CTA, centered.
	ctaH := math.Max(h*0.75, 480)
	s.cta.SetPosition(0, y)
	s.cta.SetSize(w, ctaH)
	s.ctaInner.SetSize(math.Min(inner, 560), 3*lineH+44+2*pad)
	s.ctaInner.SetPosition((w-s.ctaInner.Width)/2, (ctaH-s.ctaInner.Height)/2)
	ciY := 0.0
	for _, c := range s.ctaInner.Children() {
		c.SetPosition((s.ctaInner.Width-c.Width)/2, ciY)
		ciY += c.Height + pad
	}
	y += ctaH

	// Contact form: two short fields side by side when there is room.
	s.contact.SetPosition(0, y)
	s.contact.Children()[0].SetPosition(left, 96)
	formW := math.Min(inner, 800)
	s.form.SetPosition(left, 96+2*lineH+32)
	fy := 0.0
	half := (formW - pad) / 2
	for i, f := range s.fields {
		switch {
		case i < 2 && w >= 640:
			f.SetPosition(float64(i)*(half+pad), 0)
			f.SetSize(half, 44)
			if i == 1 {
				fy = 44 + pad
			}
		case i == 3:
			f.SetPosition(0, fy)
			f.SetSize(formW, 120)
			fy += 120 + pad
		default:
			f.SetPosition(0, fy)
			f.SetSize(formW, 44)
			fy += 44 + pad
		}
		f.Children()[0].SetPosition(16, 14)
	}
	send := s.form.Children()[len(s.form.Children())-1]
	send.SetPosition(0, fy)
	fy += send.Height
	s.form.SetSize(formW, fy)
	links := s.contact.Children()[2]
	links.SetPosition(left, s.form.Y+fy+48)
	contactH := math.Max(h, links.Y+lineH+96)
	s.contact.SetSize(w, contactH)
	y += contactH

	s.footer.SetPosition(0, y)
	s.footer.SetSize(w, 96)
	s.footer.Children()[0].SetPosition(left, 40)

	// Fixed chrome.
	s.nav.SetSize(w, reveal.NavOffset)
	s.navLinks.SetPosition(w-s.navLinks.Width-pad, (reveal.NavOffset-lineH)/2)
	s.navLinks.Visible = w >= 768
	if s.barSub != nil {
		s.barSub.Release()
	}
	s.barSub = s.page.Tracker().BindWidth(s.bar, w)
}
