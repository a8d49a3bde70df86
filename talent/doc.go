// Package talent builds and runs talent searches.
//
// Loosely typed request parameters are resolved once into ResolvedParams,
// turned into a search.Query that combines facet filters, the visibility
// rule and company exclusions, and sent to a search.Backend sorted by
// updated_at descending. The result is the list of talent ids in backend
// order.
//
// A failed search never surfaces as an error: it is logged, reported to
// the Observer and returned as an empty list.
//
//	s := talent.NewSearcher(client, talent.WithObserver(collector))
//	ids := s.Search(ctx, []string{"talents"}, talent.Params{
//		"work_roles": []string{"DevOps", "Fullstack"},
//		"company_id": []int64{7},
//	})
package talent
