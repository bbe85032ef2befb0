package ottolai

import (
	"context"
	"sync"
)

const (
	// defaultParallelThreshold is the minimum input count before ResolveAll
	// switches from sequential to concurrent resolution.
	defaultParallelThreshold = 5

	// maxConcurrentResolves bounds in-flight resolutions per batch so a
	// document with hundreds of nodes cannot fan out into hundreds of
	// simultaneous subprocess invocations.
	maxConcurrentResolves = 8
)

// ResolveAll resolves each text independently and returns results in input
// order. Every request is stateless and isolated, so batches at or beyond
// the parallel threshold run concurrently with no coordination beyond a
// WaitGroup; smaller batches stay sequential.
func (r *Resolver) ResolveAll(ctx context.Context, texts []string) []TranslationResult {
	results := make([]TranslationResult, len(texts))

	if len(texts) < r.parallelThreshold {
		for i, text := range texts {
			results[i] = r.Resolve(ctx, text)
		}
		return results
	}

	sem := make(chan struct{}, maxConcurrentResolves)
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = r.Resolve(ctx, text)
		}(i, text)
	}

	wg.Wait()
	return results
}

// resolveNodes resolves document nodes deduplicated by content hash.
func (r *Resolver) resolveNodes(ctx context.Context, nodes []TextNode) map[string]TranslationResult {
	var unique []TextNode
	seen := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		if !seen[node.Hash] {
			seen[node.Hash] = true
			unique = append(unique, node)
		}
	}

	texts := make([]string, len(unique))
	for i, node := range unique {
		texts[i] = node.Text
	}

	results := r.ResolveAll(ctx, texts)

	byHash := make(map[string]TranslationResult, len(unique))
	for i, node := range unique {
		byHash[node.Hash] = results[i]
	}
	return byHash
}
