package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoPayload struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Views       int64   `json:"views"`
	Duration    float64 `json:"duration"`
	IsPublished bool    `json:"is_published"`
}

func (app *TestApp) publishVideo(t *testing.T, token, title string) videoPayload {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", title))
	require.NoError(t, writer.WriteField("description", "a test upload"))
	require.NoError(t, writer.WriteField("duration", "12.5"))

	videoPart, err := writer.CreateFormFile("video", "clip.mp4")
	require.NoError(t, err)
	_, err = videoPart.Write([]byte("fake video bytes"))
	require.NoError(t, err)

	thumbPart, err := writer.CreateFormFile("thumbnail", "thumb.png")
	require.NoError(t, err)
	_, err = thumbPart.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/videos/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		Data videoPayload `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data
}

func (app *TestApp) getJSON(t *testing.T, path, token string, out any) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestVideoLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	owner := app.registerAndLogin(t, "uploader")
	video := app.publishVideo(t, owner.AccessToken, "First upload")
	assert.Equal(t, owner.UserID, video.OwnerID)
	assert.True(t, video.IsPublished)

	// Each fetch increments the view counter.
	var fetched struct {
		Data videoPayload `json:"data"`
	}
	resp := app.getJSON(t, "/api/videos/"+video.ID, "", &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = app.getJSON(t, "/api/videos/"+video.ID, "", &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), fetched.Data.Views)

	// Listing finds it by text search.
	var listed struct {
		Data []videoPayload `json:"data"`
	}
	resp = app.getJSON(t, "/api/videos/?query=First", "", &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed.Data, 1)
	assert.Equal(t, video.ID, listed.Data[0].ID)

	// A stranger cannot delete it.
	stranger := app.registerAndLogin(t, "stranger")
	req, err := http.NewRequest(http.MethodDelete, app.Server.URL+"/api/videos/"+video.ID, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+stranger.AccessToken)
	delResp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, delResp.StatusCode)

	// The owner can.
	req, err = http.NewRequest(http.MethodDelete, app.Server.URL+"/api/videos/"+video.ID, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+owner.AccessToken)
	delResp, err = app.Client.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	resp = app.getJSON(t, "/api/videos/"+video.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentsAndLikes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	owner := app.registerAndLogin(t, "creator")
	viewer := app.registerAndLogin(t, "viewer")
	video := app.publishVideo(t, owner.AccessToken, "Commented video")

	resp := app.postJSON(t, "/api/videos/"+video.ID+"/comments", viewer.AccessToken, map[string]string{
		"content": "nice one",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comments struct {
		Data []struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		} `json:"data"`
	}
	listResp := app.getJSON(t, "/api/videos/"+video.ID+"/comments", "", &comments)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	require.Len(t, comments.Data, 1)
	assert.Equal(t, "nice one", comments.Data[0].Content)

	// Liking toggles on and back off.
	var toggled struct {
		Data map[string]bool `json:"data"`
	}
	resp = app.postJSON(t, "/api/likes/videos/"+video.ID+"/toggle", viewer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	resp.Body.Close()
	assert.True(t, toggled.Data["liked"])

	var liked struct {
		Data []videoPayload `json:"data"`
	}
	likedResp := app.getJSON(t, "/api/likes/videos", viewer.AccessToken, &liked)
	require.Equal(t, http.StatusOK, likedResp.StatusCode)
	require.Len(t, liked.Data, 1)

	resp = app.postJSON(t, "/api/likes/videos/"+video.ID+"/toggle", viewer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	resp.Body.Close()
	assert.False(t, toggled.Data["liked"])
}

func TestPlaylists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	owner := app.registerAndLogin(t, "curator")
	video := app.publishVideo(t, owner.AccessToken, "Playlist material")

	resp := app.postJSON(t, "/api/playlists/", owner.AccessToken, map[string]string{
		"name":        "Favorites",
		"description": "the good stuff",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID       string   `json:"id"`
			Name     string   `json:"name"`
			VideoIDs []string `json:"video_ids"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Empty(t, created.Data.VideoIDs)

	resp = app.postJSON(t, fmt.Sprintf("/api/playlists/%s/videos/%s", created.Data.ID, video.ID), owner.AccessToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		Data struct {
			VideoIDs []string `json:"video_ids"`
		} `json:"data"`
	}
	getResp := app.getJSON(t, "/api/playlists/"+created.Data.ID, "", &fetched)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	require.Len(t, fetched.Data.VideoIDs, 1)
	assert.Equal(t, video.ID, fetched.Data.VideoIDs[0])

	// Adding the same video twice does not duplicate it.
	resp = app.postJSON(t, fmt.Sprintf("/api/playlists/%s/videos/%s", created.Data.ID, video.ID), owner.AccessToken, nil)
	resp.Body.Close()
	getResp = app.getJSON(t, "/api/playlists/"+created.Data.ID, "", &fetched)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Len(t, fetched.Data.VideoIDs, 1)
}

func TestSubscriptionsAndDashboard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	creator := app.registerAndLogin(t, "channelowner")
	fan := app.registerAndLogin(t, "fan")
	video := app.publishVideo(t, creator.AccessToken, "Channel video")

	// Subscribing to yourself is rejected.
	resp := app.postJSON(t, "/api/subscriptions/channels/"+creator.UserID+"/toggle", creator.AccessToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = app.postJSON(t, "/api/subscriptions/channels/"+creator.UserID+"/toggle", fan.AccessToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var subscribers struct {
		Data []struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	subResp := app.getJSON(t, "/api/subscriptions/channels/"+creator.UserID+"/subscribers", "", &subscribers)
	require.Equal(t, http.StatusOK, subResp.StatusCode)
	require.Len(t, subscribers.Data, 1)
	assert.Equal(t, "fan", subscribers.Data[0].Username)

	// Views and likes feed the dashboard numbers.
	viewResp := app.getJSON(t, "/api/videos/"+video.ID, "", nil)
	require.Equal(t, http.StatusOK, viewResp.StatusCode)
	resp = app.postJSON(t, "/api/likes/videos/"+video.ID+"/toggle", fan.AccessToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The rollup job snapshots every channel.
	require.NoError(t, app.DashboardSvc.RollupAllChannels(context.Background()))

	var stats struct {
		Data struct {
			TotalVideos      int64 `json:"total_videos"`
			TotalViews       int64 `json:"total_views"`
			TotalLikes       int64 `json:"total_likes"`
			TotalSubscribers int64 `json:"total_subscribers"`
		} `json:"data"`
	}
	statsResp := app.getJSON(t, "/api/dashboard/stats", creator.AccessToken, &stats)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	assert.Equal(t, int64(1), stats.Data.TotalVideos)
	assert.Equal(t, int64(1), stats.Data.TotalViews)
	assert.Equal(t, int64(1), stats.Data.TotalLikes)
	assert.Equal(t, int64(1), stats.Data.TotalSubscribers)

	var channelVideos struct {
		Data []videoPayload `json:"data"`
	}
	videosResp := app.getJSON(t, "/api/dashboard/videos", creator.AccessToken, &channelVideos)
	require.Equal(t, http.StatusOK, videosResp.StatusCode)
	require.Len(t, channelVideos.Data, 1)
}
