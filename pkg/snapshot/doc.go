// Package snapshot turns a live scene graph into a static hierarchy document.
//
// An export runs in one synchronous call to [Engine.Build]:
//
//  1. The untracked roots (objects living outside every partition, such as
//     objects marked to survive scene loads) are recovered with
//     [ResolveUntracked].
//  2. The selected partitions are walked root by root. [Options] decides
//     which nodes are visited and which details are written.
//  3. Each visited node is turned into a GameObject element by the encoder.
//     Floats go through [FormatFloat] so exports diff cleanly.
//
// A node whose host binding fails is replaced by a placeholder element
// carrying the error message; its siblings are still exported. Only a
// failure of the registry itself aborts an export.
//
// The caller must not mutate the graph while Build runs. The engine keeps
// no state between calls.
package snapshot
