package linkcheck

import (
	"github.com/nao1215/linkcheck/internal/extract"
	"github.com/nao1215/linkcheck/internal/model"
	"github.com/nao1215/linkcheck/internal/resolve"
)

// Validate checks every link of the snapshot and aggregates the result.
// It does not modify the snapshot and gives the same result for the same
// snapshot.
func Validate(s *Snapshot) *model.Result {
	paths := resolve.NewPathResolver(s)
	fragments := resolve.NewFragmentResolver(s)

	result := model.NewResult(s.Root())
	result.Pages = s.PageCount()

	for _, link := range s.linkOrder {
		linkPath, fragment, hasFragment := extract.SplitFragment(link)
		checkFragment := hasFragment && fragment != ""
		referrers := s.links[link]

		var brokenPath, brokenFragment []string
		for _, ref := range referrers {
			target := ref
			if linkPath != "" {
				resolved, ok := paths.Resolve(ref, linkPath)
				if !ok {
					brokenPath = append(brokenPath, ref)
					continue
				}
				if !resolved.IsPage() {
					continue
				}
				target = resolved.Page
			}
			if checkFragment && !fragments.Resolve(target, fragment) {
				brokenFragment = append(brokenFragment, ref)
			}
		}

		if linkPath != "" {
			result.Links.Total++
			if len(brokenPath) > 0 {
				result.Links.Broken++
				result.BrokenPaths = append(result.BrokenPaths, model.Violation{
					Kind:      model.BrokenPath,
					Link:      link,
					Referrers: brokenPath,
				})
			} else {
				result.Links.Valid++
			}
		}

		if checkFragment {
			result.Fragments.Total++
			switch {
			case len(brokenFragment) > 0:
				result.Fragments.Broken++
				result.BrokenFragments = append(result.BrokenFragments, model.Violation{
					Kind:      model.BrokenFragment,
					Link:      link,
					Referrers: brokenFragment,
				})
			case len(brokenPath) == len(referrers):
				result.Fragments.Skipped++
			default:
				result.Fragments.Valid++
			}
		}
	}

	model.SortViolations(result.BrokenPaths)
	model.SortViolations(result.BrokenFragments)
	return result
}
