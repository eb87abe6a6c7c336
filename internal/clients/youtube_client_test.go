package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func youtubeTestClient(t *testing.T, handler http.HandlerFunc) (*YouTubeClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	service, err := youtube.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication())
	if err != nil {
		ts.Close()
		t.Fatal(err)
	}
	return &YouTubeClient{service: service}, ts
}

func ytComment(text string) *youtube.Comment {
	return &youtube.Comment{
		Snippet: &youtube.CommentSnippet{
			TextDisplay:       text,
			AuthorDisplayName: "author-" + text,
			PublishedAt:       "2026-08-03T10:00:00Z",
		},
	}
}

func ytThread(top string, replies ...string) *youtube.CommentThread {
	thread := &youtube.CommentThread{
		Snippet: &youtube.CommentThreadSnippet{TopLevelComment: ytComment(top)},
	}
	if len(replies) > 0 {
		thread.Replies = &youtube.CommentThreadReplies{}
		for _, r := range replies {
			thread.Replies.Comments = append(thread.Replies.Comments, ytComment(r))
		}
	}
	return thread
}

func writeThreadPage(t *testing.T, w http.ResponseWriter, nextPageToken string, threads ...*youtube.CommentThread) {
	t.Helper()
	resp := &youtube.CommentThreadListResponse{
		Items:         threads,
		NextPageToken: nextPageToken,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encoding page: %v", err)
	}
}

func TestFetchVideoCommentsFlattensReplies(t *testing.T) {
	client, ts := youtubeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("videoId"); got != "vid123" {
			t.Errorf("videoId = %q", got)
		}
		if got := r.URL.Query().Get("textFormat"); got != "plainText" {
			t.Errorf("textFormat = %q", got)
		}
		writeThreadPage(t, w, "",
			ytThread("first", "first-reply-a", "first-reply-b"),
			ytThread("second"))
	})
	defer ts.Close()

	comments, err := client.FetchVideoComments(context.Background(), "vid123")
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, c := range comments {
		texts = append(texts, c.Text)
	}
	want := []string{"first", "first-reply-a", "first-reply-b", "second"}
	if len(texts) != len(want) {
		t.Fatalf("got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("comment order %v, want %v", texts, want)
		}
	}
	if comments[0].Author != "author-first" || comments[0].PublishedAt != "2026-08-03T10:00:00Z" {
		t.Errorf("comment metadata = %+v", comments[0])
	}
}

func TestFetchVideoCommentsPaginatesToCap(t *testing.T) {
	var pages int32
	client, ts := youtubeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := atomic.AddInt32(&pages, 1)
		var threads []*youtube.CommentThread
		for i := 0; i < 40; i++ {
			threads = append(threads, ytThread(fmt.Sprintf("p%d-c%d", page, i)))
		}
		writeThreadPage(t, w, fmt.Sprintf("page-%d", page+1), threads...)
	})
	defer ts.Close()

	comments, err := client.FetchVideoComments(context.Background(), "vid123")
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != MAX_COMMENTS_PER_FETCH {
		t.Fatalf("got %d comments, want %d", len(comments), MAX_COMMENTS_PER_FETCH)
	}
	if got := atomic.LoadInt32(&pages); got != 3 {
		t.Errorf("fetched %d pages, want 3", got)
	}
}

func TestFetchVideoCommentsSkipsEmptySnippets(t *testing.T) {
	client, ts := youtubeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeThreadPage(t, w, "",
			&youtube.CommentThread{},
			ytThread("kept"))
	})
	defer ts.Close()

	comments, err := client.FetchVideoComments(context.Background(), "vid123")
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].Text != "kept" {
		t.Fatalf("got %+v, want only the populated thread", comments)
	}
}

func TestFetchVideoCommentsNotFound(t *testing.T) {
	client, ts := youtubeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"videoNotFound"}}`)
	})
	defer ts.Close()

	_, err := client.FetchVideoComments(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFetchVideoCommentsForbidden(t *testing.T) {
	client, ts := youtubeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"commentsDisabled"}}`)
	})
	defer ts.Close()

	_, err := client.FetchVideoComments(context.Background(), "vid123")
	if !errors.Is(err, ErrAuthorization) {
		t.Fatalf("got %v, want ErrAuthorization", err)
	}
}

func TestMapError(t *testing.T) {
	yc := &YouTubeClient{}
	cases := []struct {
		code      int
		wantIs    error
		wantPlain bool
	}{
		{code: http.StatusNotFound, wantIs: ErrNotFound},
		{code: http.StatusForbidden, wantIs: ErrAuthorization},
		{code: http.StatusUnauthorized, wantIs: ErrAuthorization},
		{code: http.StatusInternalServerError, wantPlain: true},
	}
	for _, tc := range cases {
		src := &googleapi.Error{Code: tc.code, Message: "upstream says no"}
		got := yc.mapError(fmt.Errorf("call failed: %w", src), "vid123")
		if tc.wantPlain {
			if errors.Is(got, ErrNotFound) || errors.Is(got, ErrAuthorization) {
				t.Errorf("code %d mapped to a sentinel: %v", tc.code, got)
			}
			continue
		}
		if !errors.Is(got, tc.wantIs) {
			t.Errorf("code %d: got %v, want %v", tc.code, got, tc.wantIs)
		}
	}

	plain := yc.mapError(errors.New("dial tcp: refused"), "vid123")
	if errors.Is(plain, ErrNotFound) || errors.Is(plain, ErrAuthorization) {
		t.Errorf("transport error mapped to a sentinel: %v", plain)
	}
}
