// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ir defines the intermediate representation produced by the step
// compiler. A compiled step is a Fragment: a small, backend-neutral tree of
// closed node variants describing pull-based iteration over upstream records,
// one remote operation per record, and the accept/reject classification that
// follows it.
//
// Why an owned tagged tree?
//
// The fragment is consumed by more than one backend (source emission in
// internal/emit, direct interpretation in internal/interp). Keeping the IR as
// a closed set of Go structs lets every backend dispatch with an exhaustive
// type switch instead of probing dynamic shapes, and keeps capacity logic in
// exactly one place: the builders that synthesize the tree.
//
// Ownership: a Fragment belongs to the Repository that was created around it.
// Attaching a client reference or merging repositories transfers or mutates
// that ownership explicitly; nothing else may hold on to the tree.
package ir
