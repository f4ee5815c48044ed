// Package clique implements a parallel multi-start greedy approximation for
// the maximum clique problem.
//
// The engine runs many independent trials. Each trial produces a vertex
// visitation order from one of four strategies (degree-descending,
// uniform-random, degree-plus-noise, neighborhood-seeded), extends it into a
// clique with a single deterministic greedy pass, and offers the candidate
// to a shared reducer that keeps the largest clique seen so far.
//
// All search diversity comes from the ordering strategies; the greedy
// extension itself is deterministic. Quality therefore improves with the
// number and variety of trials, never with backtracking - this is a
// randomized multi-start heuristic, not an exact solver.
//
// # Usage
//
//	s := clique.Searcher{Trials: 5000}
//	res, err := s.Run(context.Background(), g)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Size, res.Clique)
//
// Trials share only the read-only graph and degree table plus the reducer;
// every trial owns its random source access, visitation order and candidate
// buffer exclusively, so the search is race-free by construction.
package clique
