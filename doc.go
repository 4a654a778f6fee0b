// Package reveal is a scroll-synchronized reveal animation engine for
// [Ebitengine].
//
// A [Page] holds a retained tree of layout boxes and a vertical [Viewport]
// onto it. As the viewer scrolls, reveal reports normalized scroll progress,
// watches page regions cross the viewport, and plays declarative timelines
// that fade, slide and scale elements into view.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	page := reveal.NewPage(1280, 800)
//	// ... add nodes, mount regions ...
//	reveal.Run(page, reveal.RunConfig{
//		Title: "My Page", Width: 1280, Height: 800,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Page.Update], [Page.Draw] and [Page.Layout] directly.
//
// # Timelines
//
// A [Timeline] is a validated list of [Step] values. Each step animates the
// nodes a selector matches from one [PropertySet] to another with a gween
// easing, an optional delay and a per-element stagger:
//
//	fadeUp := reveal.MustTimeline(reveal.Step{
//		Target:   ".fade-up",
//		From:     reveal.PropertySet{reveal.Opacity: 0, reveal.TranslateY: 40},
//		To:       reveal.PropertySet{reveal.Opacity: 1, reveal.TranslateY: 0},
//		Duration: 0.8,
//		Ease:     ease.OutQuart,
//		Stagger:  0.15,
//	})
//
// Timelines are played by an [Animator]. Starting a run cancels any run
// already animating the same elements, so a reverse requested mid-play
// continues smoothly from where the forward run left off.
//
// # Triggers, gates and scopes
//
// A [Registry] binds a [Region] to a timeline and an intersection [Window].
// A [Media] guards registrations behind width conditions such as
// [MinWidth]. A [Scope] collects every [Handle] a mounted region creates and
// releases them in reverse order on unmount:
//
//	page.Mount(about, func(s *reveal.Scope) {
//		s.Keep(page.Registry().Register(reveal.RegionOf(about), fadeUp,
//			reveal.Window{Action: reveal.ActionReverse, BottomInset: 0.25}))
//	})
//
// Whole pages can be choreographed from YAML with [ParseManifest] and
// [Manifest.Apply]. Lifecycle events can be forwarded to a [Donburi] world
// with the reveal/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package reveal
