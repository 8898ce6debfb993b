// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package sample contains hand-written sources and reconstruction routines
// for two representative shapes: the payload enum Animal, and the nested
// struct Outer. They are the code a generator would emit for these types, and
// serve as reference implementations and benchmarks of the protocol.
//
// Each source wraps one root value and a private stack of pending work. When
// asked for the next value, it pops the top of the stack; if that is a
// compound, it pushes the children in reverse order so that they pop in
// declaration order. Depth of the traversal is bounded by the stack, not by
// the call stack of the source.
package sample
