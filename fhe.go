// Package fhe provides the arithmetic foundations of a lattice-based
// homomorphic-encryption library.
//
// The core lives in the rq package, which implements polynomial rings
// R_q = Z_q[X]/(X^N + 1) with q a product of word-sized primes, in a
// residue-number-system representation. The supporting packages implement
// the per-prime modular arithmetic (zq), the negacyclic number-theoretic
// transform (zq/ntt), the CRT projection and lifting between integers and
// residue tuples (rns), and the pseudo-random and noise sampling
// (utils/sampling).
package fhe
