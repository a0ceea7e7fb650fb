package services

import "github.com/prowl-osint/prowl-cli/internal/core/domain"

// Extract classifies raw per-site probe results into found accounts and
// an error tally.
//
// A result counts as found only when its status is Claimed, it carries
// a non-empty profile URL and, unless includeSimilar is set, it is not
// flagged as a fuzzy match. Results without a status are skipped
// entirely. Unknown and Illegal statuses count towards the error tally.
// Output order follows the input (provider-native) order.
func Extract(raw []domain.RawSiteResult, includeSimilar bool) ([]domain.FoundAccount, int) {
	var found []domain.FoundAccount
	errorsCount := 0

	for _, r := range raw {
		if !r.HasStatus {
			continue
		}
		if r.Status.Errored() {
			errorsCount++
			continue
		}
		if r.Status != domain.StatusClaimed {
			continue
		}
		if r.URL == "" {
			continue
		}
		if r.Similar && !includeSimilar {
			continue
		}
		found = append(found, domain.FoundAccount{
			Site: domain.SafeLabel(r.SiteName),
			URL:  r.URL,
		})
	}

	return found, errorsCount
}
