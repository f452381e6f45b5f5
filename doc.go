// Package posterwall is a visual editor library for laying out rectangular
// poster placeholders on a virtual wall, built on [Ebitengine].
//
// Posterwall provides the wall document model, a staged validator for
// untrusted layout files, JSON import/export, inline data-URL image
// payloads, a pan/zoom camera, and a ready-made interactive editor loop.
//
// # Quick start
//
// The simplest way to get started is [NewEditor] with a fresh [Wall]:
//
//	wall := posterwall.NewWall()
//	editor := posterwall.NewEditor(wall, 1280, 800)
//	ebiten.RunGame(editor)
//
// See examples/designer for a complete program.
//
// # Documents
//
// A wall layout travels as a plain JSON document: a settings object plus an
// ordered poster array. [ParseDocument] validates untrusted text and either
// returns the parsed [Document] or a [ParseError] naming exactly one failure
// reason. Malformed input is never coerced into a partially valid state.
//
//	doc, perr := posterwall.ParseDocument(raw)
//	if perr != nil {
//		fmt.Println(perr.Error())
//	}
//
// Poster order is paint order: later entries draw on top.
//
// # Images
//
// Poster images embed inline as base64 data URLs. [ImageLoader] decodes them
// concurrently and hands results back on the game loop via
// [ImageLoader.Drain], so all wall state stays single-threaded.
//
// [Ebitengine]: https://ebitengine.org
package posterwall
