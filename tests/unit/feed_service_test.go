package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	feed "postline/contexts/content/feed-service"
	domainerrors "postline/contexts/content/feed-service/domain/errors"
	httptransport "postline/contexts/content/feed-service/transport/http"
	"postline/contracts/session"
)

func TestFeedCreateReadUpdateDeleteFlow(t *testing.T) {
	module := feed.NewInMemoryModule(nil)
	owner := session.Authenticated("owner-1", "owner@example.com")

	created, err := module.Handler.CreatePostHandler(context.Background(), owner, httptransport.CreatePostRequest{
		Title:   "My first post",
		Content: "Some words worth reading",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	postID := created.Data.ID
	if postID == "" {
		t.Fatal("expected post id")
	}
	if created.Data.OwnerID != "owner-1" {
		t.Fatalf("expected owner-1, got %s", created.Data.OwnerID)
	}

	reader := session.Authenticated("reader-1", "reader@example.com")
	read, err := module.Handler.GetPostHandler(context.Background(), reader, postID)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if read.Data.Title != "My first post" {
		t.Fatalf("unexpected title %q", read.Data.Title)
	}

	newTitle := "My first post, edited"
	updated, err := module.Handler.UpdatePostHandler(context.Background(), owner, postID, httptransport.UpdatePostRequest{
		Title:   newTitle,
		Content: "Some words worth rereading",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Data.Title != newTitle {
		t.Fatalf("unexpected updated title %q", updated.Data.Title)
	}

	if _, err := module.Handler.DeletePostHandler(context.Background(), owner, postID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Handler.GetPostHandler(context.Background(), reader, postID); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestFeedPaginationAcrossModuleBoundary(t *testing.T) {
	module := feed.NewInMemoryModule(nil)
	owner := session.Authenticated("owner-1", "owner@example.com")

	for i := 0; i < 5; i++ {
		_, err := module.Handler.CreatePostHandler(context.Background(), owner, httptransport.CreatePostRequest{
			Title:   fmt.Sprintf("Post number %d", i),
			Content: "content long enough",
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	var collected []string
	for page := 1; ; page++ {
		resp, err := module.Handler.ListPostsHandler(context.Background(), owner, page)
		if err != nil {
			t.Fatalf("page %d failed: %v", page, err)
		}
		if resp.Data.TotalPosts != 5 {
			t.Fatalf("page %d: expected total 5, got %d", page, resp.Data.TotalPosts)
		}
		if len(resp.Data.Posts) == 0 {
			break
		}
		for _, post := range resp.Data.Posts {
			collected = append(collected, post.ID)
		}
	}

	if len(collected) != 5 {
		t.Fatalf("expected 5 posts across pages, got %d", len(collected))
	}
	seen := map[string]bool{}
	for _, id := range collected {
		if seen[id] {
			t.Fatalf("post %s appeared on two pages", id)
		}
		seen[id] = true
	}
}

func TestFeedOwnershipEnforcedAtModuleBoundary(t *testing.T) {
	module := feed.NewInMemoryModule(nil)
	owner := session.Authenticated("owner-1", "owner@example.com")
	stranger := session.Authenticated("stranger-1", "stranger@example.com")

	created, err := module.Handler.CreatePostHandler(context.Background(), owner, httptransport.CreatePostRequest{
		Title:   "Owned post",
		Content: "content long enough",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = module.Handler.UpdatePostHandler(context.Background(), stranger, created.Data.ID, httptransport.UpdatePostRequest{
		Title:   "Hijack attempt",
		Content: "still long enough",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("update: expected ErrForbidden, got %v", err)
	}

	_, err = module.Handler.DeletePostHandler(context.Background(), stranger, created.Data.ID)
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("delete: expected ErrForbidden, got %v", err)
	}
}

func TestFeedImageLifecycleAtModuleBoundary(t *testing.T) {
	module := feed.NewInMemoryModule(nil)
	owner := session.Authenticated("owner-1", "owner@example.com")
	png := []byte("\x89PNG\r\n\x1a\n" + "testcontent")

	upload, err := module.Handler.UploadImageHandler(context.Background(), owner, png)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	imagePath := upload.Data.FilePath
	if imagePath == "" {
		t.Fatal("expected stored file path")
	}

	created, err := module.Handler.CreatePostHandler(context.Background(), owner, httptransport.CreatePostRequest{
		Title:     "Illustrated post",
		Content:   "content long enough",
		ImagePath: imagePath,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := module.Handler.DeletePostHandler(context.Background(), owner, created.Data.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if module.Attachments.Contains(imagePath) {
		t.Fatal("expected attachment released with its post")
	}
}
