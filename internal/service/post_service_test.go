package service

import (
	"errors"
	"testing"

	"kinderpost/internal/models"
)

func TestTeacherPostsOnlyToAssignedClass(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "tpost")

	if _, err := env.posts.CreatePost(fx.teacher, fx.kindergarten.ID, fx.class.ID, "Field trip", "", ""); err != nil {
		t.Fatalf("teacher post to assigned class failed: %v", err)
	}

	// A kindergarten-wide post is above a teacher's reach
	if _, err := env.posts.CreatePost(fx.teacher, fx.kindergarten.ID, 0, "Announcement", "", ""); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("teacher kindergarten-wide post = %v, want ErrAccessDenied", err)
	}
}

func TestPostClassMustBelongToKindergarten(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "ppost-a")
	other := env.seedHierarchy(t, "ppost-b")

	if _, err := env.posts.CreatePost(fx.superadmin, fx.kindergarten.ID, other.class.ID, "Mismatch", "", ""); !errors.Is(err, ErrKindergartenMismatch) {
		t.Fatalf("post with foreign class = %v, want ErrKindergartenMismatch", err)
	}
}

func TestParentFeedVisibility(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "feed-a")
	other := env.seedHierarchy(t, "feed-b")

	classPost, err := env.posts.CreatePost(fx.admin, fx.kindergarten.ID, fx.class.ID, "Class news", "", "")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	widePost, err := env.posts.CreatePost(fx.admin, fx.kindergarten.ID, 0, "Kindergarten news", "", "")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := env.posts.CreatePost(other.admin, other.kindergarten.ID, other.class.ID, "Foreign news", "", ""); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	feed, err := env.posts.ListPosts(fx.parent, 0, 0)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("parent feed has %d posts, want 2", len(feed))
	}
	seen := map[int64]bool{}
	for _, p := range feed {
		seen[p.ID] = true
	}
	if !seen[classPost.ID] || !seen[widePost.ID] {
		t.Errorf("parent feed misses own class or kindergarten post: %v", seen)
	}

	// Direct access to an invisible post is masked
	if _, err := env.posts.GetPost(other.parent, classPost.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign parent GetPost = %v, want ErrNotFound", err)
	}
}

func TestLikeToggleIdempotent(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "likes")

	post, err := env.posts.CreatePost(fx.admin, fx.kindergarten.ID, fx.class.ID, "Likeable", "", "")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := env.posts.LikePost(fx.parent, post.ID); err != nil {
			t.Fatalf("LikePost #%d failed: %v", i+1, err)
		}
	}

	liked, err := env.posts.GetPost(fx.parent, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if liked.LikeCount != 1 {
		t.Errorf("LikeCount after double like = %d, want 1", liked.LikeCount)
	}
	if !liked.LikedByCaller {
		t.Error("LikedByCaller = false, want true")
	}

	if err := env.posts.UnlikePost(fx.parent, post.ID); err != nil {
		t.Fatalf("UnlikePost failed: %v", err)
	}
	unliked, err := env.posts.GetPost(fx.parent, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if unliked.LikeCount != 0 || unliked.LikedByCaller {
		t.Errorf("after unlike: count=%d likedByCaller=%v, want 0/false", unliked.LikeCount, unliked.LikedByCaller)
	}
}

func TestCommentModeration(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "comments")

	post, err := env.posts.CreatePost(fx.admin, fx.kindergarten.ID, fx.class.ID, "Discuss", "", "")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	comment, err := env.posts.CreateComment(fx.parent, post.ID, "Lovely!")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	// Another parent in the same class can see but not remove it
	otherParent := env.createUser(t, "comments-p2@example.com", models.RoleParent)
	if _, err := env.hierarchy.CreateChild(fx.superadmin, childIn(fx, otherParent.ID)); err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	otherActor := env.loadActor(t, otherParent)

	if err := env.posts.DeleteComment(otherActor, comment.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign parent DeleteComment = %v, want ErrAccessDenied", err)
	}

	// The post's moderator may remove any comment
	if err := env.posts.DeleteComment(fx.admin, comment.ID); err != nil {
		t.Fatalf("admin DeleteComment failed: %v", err)
	}

	// The author may always remove their own
	again, err := env.posts.CreateComment(fx.parent, post.ID, "Again")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if err := env.posts.DeleteComment(fx.parent, again.ID); err != nil {
		t.Fatalf("author DeleteComment failed: %v", err)
	}
}
