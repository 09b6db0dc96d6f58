package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"postboard/internal/client"
	"postboard/internal/models"
	"postboard/internal/notifications"
	"postboard/internal/validation"
)

type fakeAPI struct {
	items   []models.PostPrimitive
	listErr error
	created []validation.CreatePostRequest
}

func (f *fakeAPI) List(context.Context) ([]models.PostPrimitive, error) {
	return f.items, f.listErr
}

func (f *fakeAPI) Create(_ context.Context, in validation.CreatePostRequest) (models.PostPrimitive, error) {
	f.created = append(f.created, in)
	return models.NewPost(in.Name, in.Description).ToPrimitive(), nil
}

func (f *fakeAPI) Get(_ context.Context, id string) (models.PostPrimitive, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PostPrimitive{}, &client.APIError{Status: 404, Code: models.CodeNotFound, Message: "Post with ID " + id + " not found"}
}

func (f *fakeAPI) Remove(_ context.Context, id string) (models.PostPrimitive, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PostPrimitive{}, &client.APIError{Status: 404, Code: models.CodeNotFound, Message: "Post with ID " + id + " not found"}
}

func run(t *testing.T, api client.PostsAPI, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&options{api: api})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func samplePosts() []models.PostPrimitive {
	return []models.PostPrimitive{
		models.NewPost("Release notes", "v1").ToPrimitive(),
		models.NewPost("Lunch menu", "soup").ToPrimitive(),
	}
}

func TestList_Table(t *testing.T) {
	posts := samplePosts()
	out, err := run(t, &fakeAPI{items: posts}, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], posts[0].ID)
	assert.Contains(t, lines[2], "Lunch menu")
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "list")
	require.NoError(t, err)
	assert.Equal(t, "(no posts)\n", out)
}

func TestList_FilterJSON(t *testing.T) {
	out, err := run(t, &fakeAPI{items: samplePosts()}, "list", "--filter", "LUNCH", "-o", "json")
	require.NoError(t, err)

	var got []models.PostPrimitive
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Lunch menu", got[0].Name)
}

func TestList_YAML(t *testing.T) {
	out, err := run(t, &fakeAPI{items: samplePosts()}, "list", "-o", "yaml")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Release notes", got[0]["name"])
}

func TestList_BadFormat(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestList_ServerError(t *testing.T) {
	_, err := run(t, &fakeAPI{listErr: &client.APIError{Status: 500, Message: "Internal server error"}}, "list")
	require.Error(t, err)
	assert.Equal(t, "Internal server error", err.Error())

	_, err = run(t, &fakeAPI{listErr: &client.APIError{Status: 503}}, "list")
	require.Error(t, err)
	assert.Equal(t, client.MsgLoadFailed, err.Error())
}

func TestCreate(t *testing.T) {
	api := &fakeAPI{}
	out, err := run(t, api, "create", "--name", "Hello", "--description", "World", "-o", "json")
	require.NoError(t, err)
	require.Len(t, api.created, 1)

	var got models.PostPrimitive
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Hello", got.Name)
	assert.Equal(t, "World", got.Description)
}

func TestCreate_ValidatesBeforeCalling(t *testing.T) {
	api := &fakeAPI{}
	_, err := run(t, api, "create", "--description", "x")
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())

	_, err = run(t, api, "create", "--name", strings.Repeat("a", 256), "--description", "x")
	require.Error(t, err)
	assert.Equal(t, "name must be at most 255 characters", err.Error())
	assert.Empty(t, api.created)
}

func TestDelete(t *testing.T) {
	posts := samplePosts()
	out, err := run(t, &fakeAPI{items: posts}, "delete", posts[1].ID)
	require.NoError(t, err)
	assert.Contains(t, out, posts[1].ID)

	_, err = run(t, &fakeAPI{}, "rm", "7f1d0a4e-3b9c-4c55-9f1e-2a6b8c0d4e11")
	require.Error(t, err)
	assert.Equal(t, "Post with ID 7f1d0a4e-3b9c-4c55-9f1e-2a6b8c0d4e11 not found", err.Error())
}

func TestGet(t *testing.T) {
	posts := samplePosts()
	out, err := run(t, &fakeAPI{items: posts}, "get", posts[0].ID, "-o", "json")
	require.NoError(t, err)

	var got models.PostPrimitive
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, posts[0].ID, got.ID)
	assert.Equal(t, "Release notes", got.Name)
}

func TestGet_Missing(t *testing.T) {
	id := "7f1d0a4e-3b9c-4c55-9f1e-2a6b8c0d4e11"
	_, err := run(t, &fakeAPI{items: samplePosts()}, "get", id)
	require.Error(t, err)
	assert.Equal(t, "post "+id+" does not exist or was deleted", err.Error())
}

func TestDelete_RequiresID(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "delete")
	require.Error(t, err)
}

func TestStoreError_FallsBackToCause(t *testing.T) {
	s := client.NewStore(&fakeAPI{})
	cause := errors.New("boom")
	assert.Equal(t, cause, storeError(s, cause))
}

func TestWatch_PrintsEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	publisher := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = publisher.Close() })

	post := models.NewPost("live", "update").ToPrimitive()

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := run(t, &fakeAPI{}, "watch", "--redis", mr.Addr(), "--count", "2")
		done <- result{out, err}
	}()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(notifications.PostEventsChannel)[notifications.PostEventsChannel] > 0
	}, 2*time.Second, 10*time.Millisecond)

	n := notifications.NewNotifier(publisher)
	ctx := context.Background()
	require.NoError(t, n.PublishPostEvent(ctx, notifications.EventPostCreated, post))
	require.NoError(t, n.PublishPostEvent(ctx, notifications.EventPostDeleted, post))

	select {
	case r := <-done:
		require.NoError(t, r.err)
		lines := strings.Split(strings.TrimSpace(r.out), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], notifications.EventPostCreated)
		assert.Contains(t, lines[0], post.ID)
		assert.Contains(t, lines[1], notifications.EventPostDeleted)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not exit after two events")
	}
}

func TestWatch_RequiresRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	_, err := run(t, &fakeAPI{}, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Redis configured")
}
