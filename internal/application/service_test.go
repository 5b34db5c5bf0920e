package application_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/application"
	"github.com/streamforge/media-access-service/internal/domain"
	"github.com/streamforge/media-access-service/internal/ports"
)

func TestFreeContentStreamsForAnyAuthenticatedUser(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusReady})

	grant, err := f.service.GetStreamingURL(ctx, uuid.New(), contentID, 0)
	if err != nil {
		t.Fatalf("free content should stream: %v", err)
	}
	if grant.URL == "" {
		t.Fatalf("expected signed url")
	}
	if grant.MediaType != domain.MediaTypeVideo {
		t.Fatalf("expected video media type, got %s", grant.MediaType)
	}
}

func TestPaidPersonalContentRequiresPurchase(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	contentID := f.addContent(contentSeed{priceCents: 1999, mediaStatus: domain.MediaStatusReady})

	_, err := f.service.GetStreamingURL(ctx, userID, contentID, 0)
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected access denied without purchase, got %v", err)
	}
	var denied *domain.AccessDeniedError
	if !errors.As(err, &denied) || denied.PriceCents != 1999 {
		t.Fatalf("expected denial carrying price, got %v", err)
	}

	f.addPurchaseGrant(userID, contentID)
	grant, err := f.service.GetStreamingURL(ctx, userID, contentID, 0)
	if err != nil {
		t.Fatalf("purchase grant should stream: %v", err)
	}
	if grant.URL == "" {
		t.Fatalf("expected signed url after purchase")
	}
}

func TestOrgContentGrantedViaActiveMembership(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()
	contentID := f.addContent(contentSeed{priceCents: 4999, orgID: &orgID, mediaStatus: domain.MediaStatusReady})

	if _, err := f.service.GetStreamingURL(ctx, userID, contentID, 0); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected denial without membership, got %v", err)
	}

	f.addMembership(orgID, userID, "editor")
	result, err := f.service.CheckAccess(ctx, userID, contentID)
	if err != nil {
		t.Fatalf("check access failed: %v", err)
	}
	if !result.Granted || result.Reason != domain.AccessReasonOrgMember {
		t.Fatalf("expected org_member grant, got %+v", result)
	}
}

func TestPurchaseGrantWinsOverMembership(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()
	contentID := f.addContent(contentSeed{priceCents: 4999, orgID: &orgID, mediaStatus: domain.MediaStatusReady})
	f.addPurchaseGrant(userID, contentID)
	f.addMembership(orgID, userID, "viewer")

	result, err := f.service.CheckAccess(ctx, userID, contentID)
	if err != nil {
		t.Fatalf("check access failed: %v", err)
	}
	if result.Reason != domain.AccessReasonPurchased {
		t.Fatalf("expected purchased reason to win, got %s", result.Reason)
	}
}

func TestUnknownContentIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.GetStreamingURL(ctx, uuid.New(), uuid.New(), 0); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.service.CheckAccess(ctx, uuid.New(), uuid.New()); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected not found from check access, got %v", err)
	}
}

func TestDraftContentIsNotFoundEvenWithPurchase(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	contentID := f.addContent(contentSeed{
		priceCents:  1999,
		status:      domain.ContentStatusDraft,
		mediaStatus: domain.MediaStatusReady,
	})
	f.addPurchaseGrant(userID, contentID)

	if _, err := f.service.GetStreamingURL(ctx, userID, contentID, 0); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("draft content must be not found regardless of grants, got %v", err)
	}
}

func TestSoftDeletedContentIsNotFoundEvenWithMembership(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	orgID := uuid.New()
	deletedAt := time.Now().UTC().Add(-time.Hour)
	contentID := f.addContent(contentSeed{
		priceCents:  4999,
		orgID:       &orgID,
		deletedAt:   &deletedAt,
		mediaStatus: domain.MediaStatusReady,
	})
	f.addMembership(orgID, userID, "editor")

	if _, err := f.service.GetStreamingURL(ctx, userID, contentID, 0); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("soft-deleted content must be not found regardless of membership, got %v", err)
	}
	if _, err := f.service.CheckAccess(ctx, userID, contentID); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("soft-deleted content must be not found from check access, got %v", err)
	}
}

func TestReadyMediaWithoutManifestKeyIsSigningError(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	contentID := f.addContent(contentSeed{
		priceCents:  0,
		mediaStatus: domain.MediaStatusReady,
		nilKey:      true,
	})

	_, err := f.service.GetStreamingURL(ctx, uuid.New(), contentID, 0)
	if !errors.Is(err, domain.ErrSigning) {
		t.Fatalf("ready media without a key must fail as a signing error, got %v", err)
	}
	if f.signer.calls() != 0 {
		t.Fatalf("signer must not be called without a manifest key")
	}
}

func TestProcessingMediaIsNotReady(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusProcessing})

	_, err := f.service.GetStreamingURL(ctx, uuid.New(), contentID, 0)
	if !errors.Is(err, domain.ErrMediaNotReady) {
		t.Fatalf("expected media not ready, got %v", err)
	}
	var notReady *domain.MediaNotReadyError
	if !errors.As(err, &notReady) || notReady.Status != domain.MediaStatusProcessing {
		t.Fatalf("expected status in not-ready error, got %v", err)
	}
	if f.signer.calls() != 0 {
		t.Fatalf("signer must not be called for unready media")
	}
}

func TestAccessCheckIgnoresMediaReadiness(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusPending})

	result, err := f.service.CheckAccess(ctx, uuid.New(), contentID)
	if err != nil {
		t.Fatalf("check access should not consult readiness: %v", err)
	}
	if !result.Granted || result.Reason != domain.AccessReasonFree {
		t.Fatalf("expected free grant, got %+v", result)
	}
}

func TestStreamExpiryBoundsAndDefault(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusReady})

	for _, bad := range []int64{1, 299, 86401} {
		if _, err := f.service.GetStreamingURL(ctx, userID, contentID, bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expiry %d should be rejected, got %v", bad, err)
		}
	}

	before := time.Now().UTC()
	grant, err := f.service.GetStreamingURL(ctx, userID, contentID, 0)
	if err != nil {
		t.Fatalf("default expiry should stream: %v", err)
	}
	want := before.Add(time.Hour)
	if grant.ExpiresAt.Before(want.Add(-5*time.Second)) || grant.ExpiresAt.After(want.Add(5*time.Second)) {
		t.Fatalf("expected expires_at near now+1h, got %v", grant.ExpiresAt)
	}
	if f.signer.lastExpiry() != time.Hour {
		t.Fatalf("expected signer called with default expiry, got %v", f.signer.lastExpiry())
	}
}

func TestSignerFailureSurfacesAsSigningError(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.signer.fail(errors.New("upstream timeout"))
	ctx := context.Background()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusReady})

	_, err := f.service.GetStreamingURL(ctx, uuid.New(), contentID, 0)
	if !errors.Is(err, domain.ErrSigning) {
		t.Fatalf("expected signing error, got %v", err)
	}
	if f.signer.calls() != 1 {
		t.Fatalf("signer failures must not be retried, calls=%d", f.signer.calls())
	}
}

func TestSignerReceivesManifestKey(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	contentID := f.addContent(contentSeed{priceCents: 0, mediaStatus: domain.MediaStatusReady})

	grant, err := f.service.GetStreamingURL(ctx, uuid.New(), contentID, 600)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	wantKey := "media/" + contentID.String() + "/manifest.m3u8"
	if f.signer.lastKey() != wantKey {
		t.Fatalf("expected manifest key %q, got %q", wantKey, f.signer.lastKey())
	}
	if !strings.Contains(grant.URL, wantKey) {
		t.Fatalf("expected signed url to carry the key, got %s", grant.URL)
	}
}

func TestSaveProgressValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	err := f.service.SaveProgress(ctx, application.SaveProgressRequest{
		UserID: uuid.New(), ContentID: uuid.New(), PositionSeconds: -1, DurationSeconds: 100,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative position should be rejected, got %v", err)
	}

	err = f.service.SaveProgress(ctx, application.SaveProgressRequest{
		UserID: uuid.New(), ContentID: uuid.New(), PositionSeconds: 10, DurationSeconds: 0,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero duration should be rejected, got %v", err)
	}
}

func TestProgressNeverRegresses(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	contentID := uuid.New()

	save := func(pos int64, completed bool) {
		t.Helper()
		err := f.service.SaveProgress(ctx, application.SaveProgressRequest{
			UserID: userID, ContentID: contentID,
			PositionSeconds: pos, DurationSeconds: 1000, Completed: completed,
		})
		if err != nil {
			t.Fatalf("save progress failed: %v", err)
		}
	}

	save(500, false)
	save(500, false)
	save(300, false)
	snap, err := f.service.GetProgress(ctx, userID, contentID)
	if err != nil || snap == nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if snap.PositionSeconds != 500 {
		t.Fatalf("position must not regress, got %d", snap.PositionSeconds)
	}
	if snap.PercentComplete != 50 {
		t.Fatalf("expected 50 percent, got %d", snap.PercentComplete)
	}

	save(600, true)
	save(700, false)
	snap, err = f.service.GetProgress(ctx, userID, contentID)
	if err != nil || snap == nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if !snap.Completed {
		t.Fatalf("completed must not revert to false")
	}
	if snap.PositionSeconds != 700 {
		t.Fatalf("expected position 700, got %d", snap.PositionSeconds)
	}
}

func TestAutoCompletionBoundary(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()

	below := uuid.New()
	if err := f.service.SaveProgress(ctx, application.SaveProgressRequest{
		UserID: userID, ContentID: below, PositionSeconds: 94, DurationSeconds: 100,
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	snap, _ := f.service.GetProgress(ctx, userID, below)
	if snap.Completed {
		t.Fatalf("94/100 must not auto-complete")
	}

	at := uuid.New()
	if err := f.service.SaveProgress(ctx, application.SaveProgressRequest{
		UserID: userID, ContentID: at, PositionSeconds: 95, DurationSeconds: 100,
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	snap, _ = f.service.GetProgress(ctx, userID, at)
	if !snap.Completed {
		t.Fatalf("95/100 must auto-complete")
	}
}

func TestGetProgressReturnsNilWhenNeverStarted(t *testing.T) {
	t.Parallel()

	f := newFixture()
	snap, err := f.service.GetProgress(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot for never-started content")
	}
}

func TestLibraryPaginationHasMore(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	for i := 0; i < 5; i++ {
		f.addPurchase(userID, fmt.Sprintf("Title %d", i), time.Now().UTC().Add(-time.Duration(i)*time.Hour))
	}

	page, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if len(page.Items) != 3 || !page.Pagination.HasMore {
		t.Fatalf("expected 3 items with has_more, got %d has_more=%v", len(page.Items), page.Pagination.HasMore)
	}
	if page.Items[0].Title != "Title 0" {
		t.Fatalf("expected most recent purchase first, got %s", page.Items[0].Title)
	}

	page, err = f.service.ListLibrary(ctx, userID, application.LibraryQuery{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if len(page.Items) != 2 || page.Pagination.HasMore {
		t.Fatalf("expected final page of 2, got %d has_more=%v", len(page.Items), page.Pagination.HasMore)
	}
}

func TestLibraryFiltersExcludeUnstartedItems(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()

	unstarted := f.addPurchase(userID, "Unstarted", time.Now().UTC())
	watching := f.addPurchase(userID, "Watching", time.Now().UTC().Add(-time.Hour))
	finished := f.addPurchase(userID, "Finished", time.Now().UTC().Add(-2*time.Hour))

	mustSave := func(contentID uuid.UUID, pos int64, completed bool) {
		t.Helper()
		if err := f.service.SaveProgress(ctx, application.SaveProgressRequest{
			UserID: userID, ContentID: contentID,
			PositionSeconds: pos, DurationSeconds: 1000, Completed: completed,
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	mustSave(watching, 200, false)
	mustSave(finished, 980, false)

	completedPage, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{Filter: domain.LibraryFilterCompleted})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if len(completedPage.Items) != 1 || completedPage.Items[0].Title != "Finished" {
		t.Fatalf("completed filter should return only finished item, got %+v", completedPage.Items)
	}

	inProgressPage, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{Filter: domain.LibraryFilterInProgress})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if len(inProgressPage.Items) != 1 || inProgressPage.Items[0].Title != "Watching" {
		t.Fatalf("in-progress filter should return only started item, got %+v", inProgressPage.Items)
	}
	for _, item := range inProgressPage.Items {
		if item.ContentID == unstarted {
			t.Fatalf("unstarted item leaked into in-progress filter")
		}
	}
}

func TestLibrarySortByTitleAndDuration(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	f.addPurchaseWithDuration(userID, "Beta", 600, time.Now().UTC())
	f.addPurchaseWithDuration(userID, "Alpha", 1800, time.Now().UTC().Add(-time.Hour))

	byTitle, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{SortBy: domain.LibrarySortTitle})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if byTitle.Items[0].Title != "Alpha" {
		t.Fatalf("expected title sort, got %s first", byTitle.Items[0].Title)
	}

	byDuration, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{SortBy: domain.LibrarySortDuration})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if byDuration.Items[0].DurationSeconds != 1800 {
		t.Fatalf("expected longest first, got %d", byDuration.Items[0].DurationSeconds)
	}
}

func TestLibraryRejectsUnknownFilterAndSort(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	userID := uuid.New()
	f.addPurchase(userID, "Something", time.Now().UTC())

	_, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{Filter: "bogus"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown filter must be rejected, got %v", err)
	}

	_, err = f.service.ListLibrary(ctx, userID, application.LibraryQuery{SortBy: "bogus"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown sort_by must be rejected, got %v", err)
	}

	if _, err := f.service.ListLibrary(ctx, userID, application.LibraryQuery{}); err != nil {
		t.Fatalf("empty filter and sort must fall back to defaults, got %v", err)
	}
}

func TestLibraryRejectsOutOfRangePage(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	_, err := f.service.ListLibrary(ctx, uuid.New(), application.LibraryQuery{Page: math.MaxInt})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("overflowing page must be rejected, got %v", err)
	}
	_, err = f.service.ListLibrary(ctx, uuid.New(), application.LibraryQuery{Page: math.MaxInt32 / 2})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("page whose offset exceeds the window must be rejected, got %v", err)
	}
}

func TestLibraryLimitClampedToMax(t *testing.T) {
	t.Parallel()

	f := newFixture()
	page, err := f.service.ListLibrary(context.Background(), uuid.New(), application.LibraryQuery{Limit: 5000})
	if err != nil {
		t.Fatalf("list library failed: %v", err)
	}
	if page.Pagination.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", page.Pagination.Limit)
	}
}

func TestPlayerSettingsServedThroughCache(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	f.settings.set(map[string]any{"accent_color": "#ff5500"})

	first, err := f.service.PlayerSettings(ctx)
	if err != nil {
		t.Fatalf("player settings failed: %v", err)
	}
	if first["accent_color"] != "#ff5500" {
		t.Fatalf("unexpected settings: %+v", first)
	}

	f.settings.set(map[string]any{"accent_color": "#00ff00"})
	second, err := f.service.PlayerSettings(ctx)
	if err != nil {
		t.Fatalf("player settings failed: %v", err)
	}
	if second["accent_color"] != "#ff5500" {
		t.Fatalf("expected cached value until invalidation, got %+v", second)
	}

	if err := f.service.InvalidatePlayerSettings(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	third, err := f.service.PlayerSettings(ctx)
	if err != nil {
		t.Fatalf("player settings failed: %v", err)
	}
	if third["accent_color"] != "#00ff00" {
		t.Fatalf("expected fresh value after invalidation, got %+v", third)
	}
}

type fixture struct {
	service   *application.Service
	streaming *fakeStreaming
	progress  *fakeProgress
	purchases *fakePurchases
	settings  *fakeSettings
	cache     *fakeCache
	signer    *fakeSigner
}

func newFixture() *fixture {
	streaming := &fakeStreaming{
		content:     map[uuid.UUID]domain.Content{},
		media:       map[uuid.UUID]domain.MediaAsset{},
		grants:      map[string]bool{},
		memberships: map[string]string{},
	}
	progress := &fakeProgress{rows: map[string]domain.PlaybackProgress{}}
	purchases := &fakePurchases{}
	settings := &fakeSettings{values: map[string]any{}}
	cache := &fakeCache{}
	signer := &fakeSigner{}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			DefaultStreamExpiry: time.Hour,
			LibraryDefaultLimit: 20,
			LibraryMaxLimit:     100,
		},
		Streaming: streaming,
		Progress:  progress,
		Purchases: purchases,
		Settings:  settings,
		Cache:     cache,
		Signer:    signer,
	})

	return &fixture{
		service:   svc,
		streaming: streaming,
		progress:  progress,
		purchases: purchases,
		settings:  settings,
		cache:     cache,
		signer:    signer,
	}
}

type contentSeed struct {
	priceCents  int64
	orgID       *uuid.UUID
	mediaStatus domain.MediaStatus
	status      domain.ContentStatus
	deletedAt   *time.Time
	nilKey      bool
}

func (f *fixture) addContent(seed contentSeed) uuid.UUID {
	contentID := uuid.New()
	status := seed.status
	if status == "" {
		status = domain.ContentStatusPublished
	}
	var manifestKey *string
	if !seed.nilKey {
		manifest := "media/" + contentID.String() + "/manifest.m3u8"
		manifestKey = &manifest
	}
	f.streaming.mu.Lock()
	defer f.streaming.mu.Unlock()
	f.streaming.content[contentID] = domain.Content{
		ContentID:      contentID,
		OrganizationID: seed.orgID,
		Title:          "Content " + contentID.String()[:8],
		Status:         status,
		PriceCents:     seed.priceCents,
		DeletedAt:      seed.deletedAt,
	}
	f.streaming.media[contentID] = domain.MediaAsset{
		ContentID:   contentID,
		MediaType:   domain.MediaTypeVideo,
		Status:      seed.mediaStatus,
		ManifestKey: manifestKey,
	}
	return contentID
}

func (f *fixture) addPurchaseGrant(userID, contentID uuid.UUID) {
	f.streaming.mu.Lock()
	defer f.streaming.mu.Unlock()
	f.streaming.grants[userID.String()+"/"+contentID.String()] = true
}

func (f *fixture) addMembership(orgID, userID uuid.UUID, role string) {
	f.streaming.mu.Lock()
	defer f.streaming.mu.Unlock()
	f.streaming.memberships[orgID.String()+"/"+userID.String()] = role
}

func (f *fixture) addPurchase(userID uuid.UUID, title string, purchasedAt time.Time) uuid.UUID {
	return f.addPurchaseWithDuration(userID, title, 1000, purchasedAt)
}

func (f *fixture) addPurchaseWithDuration(userID uuid.UUID, title string, duration int64, purchasedAt time.Time) uuid.UUID {
	contentID := uuid.New()
	f.purchases.mu.Lock()
	defer f.purchases.mu.Unlock()
	f.purchases.rows = append(f.purchases.rows, purchaseRow{
		userID: userID,
		item: domain.PurchasedContent{
			ContentID:       contentID,
			Title:           title,
			MediaType:       domain.MediaTypeVideo,
			DurationSeconds: duration,
			AmountPaidCents: 999,
			PurchasedAt:     purchasedAt,
		},
	})
	return contentID
}

// fakeStreaming serves every read from in-memory maps inside a single lock,
// standing in for the one-transaction read set.
type fakeStreaming struct {
	mu          sync.Mutex
	content     map[uuid.UUID]domain.Content
	media       map[uuid.UUID]domain.MediaAsset
	grants      map[string]bool
	memberships map[string]string
}

func (s *fakeStreaming) ReadForStreaming(_ context.Context, fn func(reads ports.StreamingReadSet) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *fakeStreaming) ContentForStreaming(_ context.Context, contentID uuid.UUID) (domain.Content, domain.MediaAsset, error) {
	content, ok := s.content[contentID]
	if !ok || content.Status != domain.ContentStatusPublished || content.DeletedAt != nil {
		return domain.Content{}, domain.MediaAsset{}, domain.ErrContentNotFound
	}
	media, ok := s.media[contentID]
	if !ok {
		return domain.Content{}, domain.MediaAsset{}, domain.ErrContentNotFound
	}
	return content, media, nil
}

func (s *fakeStreaming) HasPurchaseGrant(_ context.Context, userID, contentID uuid.UUID) (bool, error) {
	return s.grants[userID.String()+"/"+contentID.String()], nil
}

func (s *fakeStreaming) ActiveMembershipRole(_ context.Context, orgID, userID uuid.UUID) (string, bool, error) {
	role, ok := s.memberships[orgID.String()+"/"+userID.String()]
	return role, ok, nil
}

// fakeProgress mirrors the storage merge contract: GREATEST on position,
// OR on completed.
type fakeProgress struct {
	mu   sync.Mutex
	rows map[string]domain.PlaybackProgress
}

func progressKey(userID, contentID uuid.UUID) string {
	return userID.String() + "/" + contentID.String()
}

func (p *fakeProgress) Upsert(_ context.Context, params ports.ProgressUpsertParams) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := progressKey(params.UserID, params.ContentID)
	row, ok := p.rows[key]
	if !ok {
		p.rows[key] = domain.PlaybackProgress{
			UserID:          params.UserID,
			ContentID:       params.ContentID,
			PositionSeconds: params.PositionSeconds,
			DurationSeconds: params.DurationSeconds,
			Completed:       params.Completed,
			UpdatedAt:       params.UpdatedAt,
		}
		return nil
	}
	if params.PositionSeconds > row.PositionSeconds {
		row.PositionSeconds = params.PositionSeconds
	}
	row.Completed = row.Completed || params.Completed
	row.DurationSeconds = params.DurationSeconds
	row.UpdatedAt = params.UpdatedAt
	p.rows[key] = row
	return nil
}

func (p *fakeProgress) Get(_ context.Context, userID, contentID uuid.UUID) (*domain.PlaybackProgress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	row, ok := p.rows[progressKey(userID, contentID)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (p *fakeProgress) GetBatch(_ context.Context, userID uuid.UUID, contentIDs []uuid.UUID) (map[uuid.UUID]domain.PlaybackProgress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[uuid.UUID]domain.PlaybackProgress)
	for _, contentID := range contentIDs {
		if row, ok := p.rows[progressKey(userID, contentID)]; ok {
			out[contentID] = row
		}
	}
	return out, nil
}

type purchaseRow struct {
	userID uuid.UUID
	item   domain.PurchasedContent
}

type fakePurchases struct {
	mu   sync.Mutex
	rows []purchaseRow
}

func (p *fakePurchases) ListCompleted(_ context.Context, userID uuid.UUID, limit, offset int) ([]domain.PurchasedContent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	matched := make([]domain.PurchasedContent, 0)
	for _, row := range p.rows {
		if row.userID == userID {
			matched = append(matched, row.item)
		}
	}
	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			if matched[j].PurchasedAt.After(matched[i].PurchasedAt) {
				matched[i], matched[j] = matched[j], matched[i]
			}
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]any
}

func (s *fakeSettings) set(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
}

func (s *fakeSettings) GetPlayerSettings(_ context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

type fakeCache struct {
	mu     sync.Mutex
	cached map[string]any
}

func (c *fakeCache) Get(_ context.Context) (map[string]any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return nil, false, nil
	}
	return c.cached, true, nil
}

func (c *fakeCache) Put(_ context.Context, settings map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = settings
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	return nil
}

type fakeSigner struct {
	mu        sync.Mutex
	signKey   string
	signTTL   time.Duration
	signCalls int
	err       error
}

func (s *fakeSigner) Sign(_ context.Context, key string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signCalls++
	if s.err != nil {
		return "", s.err
	}
	s.signKey = key
	s.signTTL = expiry
	return "https://cdn.example.test/" + key + "?sig=abc", nil
}

func (s *fakeSigner) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeSigner) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signCalls
}

func (s *fakeSigner) lastKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signKey
}

func (s *fakeSigner) lastExpiry() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signTTL
}
