// Package mam implements the core of a Masked Authenticated Messaging
// channel: a forward-linked chain of messages, each one signed by a
// one-time key whose Merkle-tree membership authenticates it against a
// channel root, and masked under a key derived from that same root.
//
// A channel is published by repeatedly calling Create, advancing the
// Merkle tree's leaf index with every message and handing the new root to
// readers out of band (or, for the first message, as the channel's public
// identity). A channel is consumed by calling Parse against the current
// root and index; a successful Parse returns both the plaintext message
// and the root of the next batch of leaves, which becomes the root to
// Parse against next.
package mam
