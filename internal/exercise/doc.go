// Package exercise implements the procedural exercise generators and the
// scoring engine used by the practice modes: cloze passages, mixed
// multiple-choice/drag-and-drop quizzes, and spatial matching boards.
//
// Every function in this package is a pure function of its inputs plus an
// explicitly injected *rand.Rand. Nothing here touches the database, the
// network, or any global state, which is what lets the service layer cache,
// replay, and discard instances freely.
package exercise
