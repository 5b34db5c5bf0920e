package application

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/domain"
)

// ListLibrary pages through a user's completed purchases joined with their
// playback progress.
//
// Known caveat, preserved deliberately: the filter runs after the database
// page window is fetched, so Total reflects the filtered count of this page
// only, and a page can return fewer than limit items even when more matches
// exist further down the purchase history.
func (s *Service) ListLibrary(ctx context.Context, userID uuid.UUID, query LibraryQuery) (LibraryPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = s.cfg.LibraryDefaultLimit
	}
	if limit > s.cfg.LibraryMaxLimit {
		limit = s.cfg.LibraryMaxLimit
	}
	filter := query.Filter
	if filter == "" {
		filter = domain.LibraryFilterAll
	}
	if !domain.ValidLibraryFilter(filter) {
		return LibraryPage{}, fmt.Errorf("%w: unknown filter %q", domain.ErrInvalidInput, filter)
	}
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.LibrarySortRecent
	}
	if !domain.ValidLibrarySort(sortBy) {
		return LibraryPage{}, fmt.Errorf("%w: unknown sort_by %q", domain.ErrInvalidInput, sortBy)
	}

	// Guard the offset arithmetic against absurd page numbers before the
	// multiplication can wrap negative.
	if page > math.MaxInt32 {
		return LibraryPage{}, fmt.Errorf("%w: page out of range", domain.ErrInvalidInput)
	}
	offset64 := int64(page-1) * int64(limit)
	if offset64 > math.MaxInt32 {
		return LibraryPage{}, fmt.Errorf("%w: page out of range", domain.ErrInvalidInput)
	}

	// Fetching limit+1 rows detects a further page without a count query.
	purchases, err := s.purchases.ListCompleted(ctx, userID, limit+1, int(offset64))
	if err != nil {
		return LibraryPage{}, s.classify("list library", userID, uuid.Nil, err)
	}
	hasMore := len(purchases) > limit
	if hasMore {
		purchases = purchases[:limit]
	}

	contentIDs := make([]uuid.UUID, 0, len(purchases))
	for _, p := range purchases {
		contentIDs = append(contentIDs, p.ContentID)
	}
	progressByContent, err := s.progress.GetBatch(ctx, userID, contentIDs)
	if err != nil {
		return LibraryPage{}, s.classify("list library", userID, uuid.Nil, err)
	}

	items := make([]domain.LibraryItem, 0, len(purchases))
	for _, p := range purchases {
		item := domain.LibraryItem{Content: p}
		if prog, ok := progressByContent[p.ContentID]; ok {
			prog := prog
			item.Progress = &prog
			item.PercentComplete = prog.PercentComplete()
		}
		items = append(items, item)
	}

	items = filterLibrary(items, filter)
	sortLibrary(items, sortBy)

	views := make([]LibraryItemView, 0, len(items))
	for _, item := range items {
		view := LibraryItemView{
			ContentID:       item.Content.ContentID,
			Title:           item.Content.Title,
			MediaType:       string(item.Content.MediaType),
			DurationSeconds: item.Content.DurationSeconds,
			AmountPaidCents: item.Content.AmountPaidCents,
			PurchasedAt:     item.Content.PurchasedAt,
			PercentComplete: item.PercentComplete,
			Started:         item.Started(),
			Completed:       item.Completed(),
		}
		if item.Progress != nil {
			view.PositionSeconds = item.Progress.PositionSeconds
		}
		views = append(views, view)
	}

	return LibraryPage{
		Items: views,
		Pagination: PaginationView{
			Page:    page,
			Limit:   limit,
			Total:   len(views),
			HasMore: hasMore,
		},
	}, nil
}

// filterLibrary keeps items matching the filter. Items with no progress row
// match neither in-progress nor completed.
func filterLibrary(items []domain.LibraryItem, filter domain.LibraryFilter) []domain.LibraryItem {
	if filter == domain.LibraryFilterAll {
		return items
	}
	kept := items[:0]
	for _, item := range items {
		switch filter {
		case domain.LibraryFilterCompleted:
			if item.Completed() {
				kept = append(kept, item)
			}
		case domain.LibraryFilterInProgress:
			if item.Started() && !item.Completed() {
				kept = append(kept, item)
			}
		}
	}
	return kept
}

func sortLibrary(items []domain.LibraryItem, sortBy domain.LibrarySort) {
	switch sortBy {
	case domain.LibrarySortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Content.Title < items[j].Content.Title
		})
	case domain.LibrarySortDuration:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Content.DurationSeconds > items[j].Content.DurationSeconds
		})
	case domain.LibrarySortRecent:
		// Already ordered by purchase date from the repository read.
	}
}
