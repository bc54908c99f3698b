package store

import (
	"context"
	"testing"
	"time"

	"inkpress/internal/models"
)

var testBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

// testPost builds a minimal valid post. CreatedAt and UpdatedAt default to
// the fixed base time; tests that care about creation order set them
// explicitly.
func testPost(id string, status models.PostStatus, category string, published *time.Time) *models.Post {
	p := &models.Post{
		ID:              id,
		Title:           "Post " + id,
		Slug:            "post-" + id,
		Excerpt:         "excerpt " + id,
		Status:          status,
		ContentRaw:      `{"ops":[{"insert":"body"}]}`,
		ContentRendered: "<p>body</p>",
		CreatedAt:       testBase,
		UpdatedAt:       testBase,
		PublishedAt:     published,
	}
	if category != "" {
		p.Category = &category
	}
	return p
}

func TestMemoryStorePostRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	pub := testBase.Add(time.Hour)
	in := testPost("p1", models.StatusPublished, "tech", &pub)
	if err := s.PutPost(ctx, in); err != nil {
		t.Fatalf("PutPost: %v", err)
	}

	got, err := s.GetPost(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got == nil {
		t.Fatal("GetPost returned nil for stored post")
	}
	if got.ID != "p1" || got.Title != "Post p1" || got.Status != models.StatusPublished {
		t.Errorf("GetPost = %+v, want stored fields back", got)
	}
	if got.CategoryName() != "tech" {
		t.Errorf("category = %q, want %q", got.CategoryName(), "tech")
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(pub) {
		t.Errorf("publishedAt = %v, want %v", got.PublishedAt, pub)
	}
}

func TestMemoryStoreGetPostAbsent(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.GetPost(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got != nil {
		t.Errorf("GetPost(absent) = %+v, want nil", got)
	}
}

func TestMemoryStoreDeletePost(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.PutPost(ctx, testPost("p1", models.StatusDraft, "", nil)); err != nil {
		t.Fatalf("PutPost: %v", err)
	}
	if err := s.DeletePost(ctx, "p1"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	got, err := s.GetPost(ctx, "p1")
	if err != nil || got != nil {
		t.Errorf("GetPost after delete = (%v, %v), want (nil, nil)", got, err)
	}

	// Deleting an absent id succeeds silently.
	if err := s.DeletePost(ctx, "p1"); err != nil {
		t.Errorf("DeletePost(absent) = %v, want nil", err)
	}
}

func TestMemoryStorePutPostReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.PutPost(ctx, testPost("p1", models.StatusDraft, "", nil)); err != nil {
		t.Fatalf("PutPost: %v", err)
	}
	updated := testPost("p1", models.StatusPublished, "life", ptrTime(testBase.Add(time.Hour)))
	updated.Title = "Replaced"
	if err := s.PutPost(ctx, updated); err != nil {
		t.Fatalf("PutPost replace: %v", err)
	}

	got, err := s.GetPost(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Replaced" || got.Status != models.StatusPublished {
		t.Errorf("GetPost after replace = %+v, want replaced fields", got)
	}
}

func TestMemoryStoreQueryByStatus(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Three published at distinct times, one draft that was once
	// published, one draft never published.
	for _, p := range []*models.Post{
		testPost("p1", models.StatusPublished, "tech", ptrTime(testBase.Add(1*time.Hour))),
		testPost("p2", models.StatusPublished, "", ptrTime(testBase.Add(2*time.Hour))),
		testPost("p3", models.StatusPublished, "life", ptrTime(testBase.Add(3*time.Hour))),
		testPost("p4", models.StatusDraft, "tech", ptrTime(testBase.Add(4*time.Hour))),
		testPost("p5", models.StatusDraft, "tech", nil),
	} {
		if err := s.PutPost(ctx, p); err != nil {
			t.Fatalf("PutPost(%s): %v", p.ID, err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := s.QueryByStatus(ctx, models.StatusPublished, 0, true)
		if err != nil {
			t.Fatalf("QueryByStatus: %v", err)
		}
		wantOrder := []string{"p3", "p2", "p1"}
		assertPostOrder(t, got, wantOrder)
	})

	t.Run("oldest first", func(t *testing.T) {
		got, err := s.QueryByStatus(ctx, models.StatusPublished, 0, false)
		if err != nil {
			t.Fatalf("QueryByStatus: %v", err)
		}
		assertPostOrder(t, got, []string{"p1", "p2", "p3"})
	})

	t.Run("limit applies", func(t *testing.T) {
		got, err := s.QueryByStatus(ctx, models.StatusPublished, 2, true)
		if err != nil {
			t.Fatalf("QueryByStatus: %v", err)
		}
		assertPostOrder(t, got, []string{"p3", "p2"})
	})

	t.Run("draft with publish timestamp is visible under draft status", func(t *testing.T) {
		got, err := s.QueryByStatus(ctx, models.StatusDraft, 0, true)
		if err != nil {
			t.Fatalf("QueryByStatus: %v", err)
		}
		// p5 has no published timestamp, so the sparse index never sees it.
		assertPostOrder(t, got, []string{"p4"})
	})
}

func TestMemoryStoreQueryByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, p := range []*models.Post{
		testPost("p1", models.StatusPublished, "tech", ptrTime(testBase.Add(1*time.Hour))),
		testPost("p2", models.StatusPublished, "tech", ptrTime(testBase.Add(2*time.Hour))),
		testPost("p3", models.StatusPublished, "life", ptrTime(testBase.Add(3*time.Hour))),
		testPost("p4", models.StatusDraft, "tech", ptrTime(testBase.Add(4*time.Hour))),
		testPost("p5", models.StatusDraft, "tech", nil),
	} {
		if err := s.PutPost(ctx, p); err != nil {
			t.Fatalf("PutPost(%s): %v", p.ID, err)
		}
	}

	t.Run("category filter", func(t *testing.T) {
		got, err := s.QueryByCategory(ctx, "tech", 0, true, "")
		if err != nil {
			t.Fatalf("QueryByCategory: %v", err)
		}
		// p5 lacks a published timestamp; p4 carries one from before it was
		// unpublished, so it shows when no status filter narrows the result.
		assertPostOrder(t, got, []string{"p4", "p2", "p1"})
	})

	t.Run("status filter narrows to published", func(t *testing.T) {
		got, err := s.QueryByCategory(ctx, "tech", 0, true, models.StatusPublished)
		if err != nil {
			t.Fatalf("QueryByCategory: %v", err)
		}
		assertPostOrder(t, got, []string{"p2", "p1"})
	})

	t.Run("limit applies", func(t *testing.T) {
		got, err := s.QueryByCategory(ctx, "tech", 1, true, models.StatusPublished)
		if err != nil {
			t.Fatalf("QueryByCategory: %v", err)
		}
		assertPostOrder(t, got, []string{"p2"})
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		got, err := s.QueryByCategory(ctx, "nothing-here", 0, true, "")
		if err != nil {
			t.Fatalf("QueryByCategory: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("QueryByCategory = %d posts, want 0", len(got))
		}
	})
}

func TestMemoryStoreScanPosts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i, id := range []string{"p1", "p2", "p3"} {
		p := testPost(id, models.StatusDraft, "", nil)
		p.CreatedAt = testBase.Add(time.Duration(i) * time.Hour)
		if err := s.PutPost(ctx, p); err != nil {
			t.Fatalf("PutPost(%s): %v", id, err)
		}
	}

	got, err := s.ScanPosts(ctx, 0)
	if err != nil {
		t.Fatalf("ScanPosts: %v", err)
	}
	assertPostOrder(t, got, []string{"p3", "p2", "p1"})

	limited, err := s.ScanPosts(ctx, 2)
	if err != nil {
		t.Fatalf("ScanPosts limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ScanPosts(limit=2) = %d posts, want 2", len(limited))
	}
}

func TestMemoryStoreCategoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	desc := "all things go"
	in := &models.Category{Name: "golang", Description: &desc, PostCount: 3}
	if err := s.PutCategory(ctx, in); err != nil {
		t.Fatalf("PutCategory: %v", err)
	}

	got, err := s.GetCategory(ctx, "golang")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got == nil || got.Name != "golang" || got.PostCount != 3 {
		t.Errorf("GetCategory = %+v, want stored category", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description = %v, want %q", got.Description, desc)
	}

	// Names are case-sensitive.
	other, err := s.GetCategory(ctx, "Golang")
	if err != nil || other != nil {
		t.Errorf("GetCategory(different case) = (%v, %v), want (nil, nil)", other, err)
	}

	if err := s.DeleteCategory(ctx, "golang"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	gone, err := s.GetCategory(ctx, "golang")
	if err != nil || gone != nil {
		t.Errorf("GetCategory after delete = (%v, %v), want (nil, nil)", gone, err)
	}
	if err := s.DeleteCategory(ctx, "golang"); err != nil {
		t.Errorf("DeleteCategory(absent) = %v, want nil", err)
	}
}

func TestMemoryStoreScanCategories(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, c := range []*models.Category{
		{Name: "zebra", PostCount: 1},
		{Name: "apple", PostCount: 2},
		{Name: "", PostCount: 0},
	} {
		if err := s.PutCategory(ctx, c); err != nil {
			t.Fatalf("PutCategory(%q): %v", c.Name, err)
		}
	}

	got, err := s.ScanCategories(ctx)
	if err != nil {
		t.Fatalf("ScanCategories: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ScanCategories = %d categories, want 3 (blank names included)", len(got))
	}
	if got[0].Name != "" || got[1].Name != "apple" || got[2].Name != "zebra" {
		t.Errorf("ScanCategories order = %q, %q, %q, want sorted by name", got[0].Name, got[1].Name, got[2].Name)
	}
}

// TestMemoryStoreIsolation verifies the copy-in, copy-out contract:
// mutating a record after storing or after reading must not change what
// the store holds.
func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	pub := testBase.Add(time.Hour)
	in := testPost("p1", models.StatusPublished, "tech", &pub)
	if err := s.PutPost(ctx, in); err != nil {
		t.Fatalf("PutPost: %v", err)
	}

	// Mutate the caller's copy after the put.
	in.Title = "mutated after put"
	*in.Category = "mutated"

	got, err := s.GetPost(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Post p1" || got.CategoryName() != "tech" {
		t.Errorf("stored post changed through caller's copy: %+v", got)
	}

	// Mutate the read copy and read again.
	got.Title = "mutated after get"
	*got.PublishedAt = testBase.Add(99 * time.Hour)

	again, err := s.GetPost(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if again.Title != "Post p1" || !again.PublishedAt.Equal(pub) {
		t.Errorf("stored post changed through read copy: %+v", again)
	}
}

// assertPostOrder fails unless got contains exactly the ids in order.
func assertPostOrder(t *testing.T, got []models.Post, want []string) {
	t.Helper()
	if len(got) != len(want) {
		ids := make([]string, len(got))
		for i, p := range got {
			ids[i] = p.ID
		}
		t.Fatalf("got %d posts %v, want %d %v", len(got), ids, len(want), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("post[%d].ID = %q, want %q", i, got[i].ID, want[i])
		}
	}
}
