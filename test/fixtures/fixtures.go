// Package fixtures provides Graph API and trigger payload fixtures for tests.
package fixtures

// GraphPagePosts is a Graph API page posts response with one video post, one
// link post with attachments, one off-topic post and one malformed entry.
func GraphPagePosts() string {
	return `{
  "data": [
    {
      "id": "104_9001",
      "message": "Watch: Navy engineers test a new submarine drone with stealth radar",
      "link": "https://www.facebook.com/watch/?v=9001",
      "full_picture": "https://scontent.example.com/9001.jpg",
      "created_time": "2024-03-01T10:00:00+0000",
      "permalink_url": "https://www.facebook.com/house31/posts/9001",
      "attachments": {
        "data": [
          {
            "type": "video_inline",
            "media": {"image": {"src": "https://scontent.example.com/9001-att.jpg"}},
            "target": {"url": "https://www.facebook.com/watch/?v=9001"},
            "title": "Submarine drone"
          }
        ]
      }
    },
    {
      "id": "104_9002",
      "message": "SpaceX starship rocket launch puts a new satellite in orbit around the moon",
      "created_time": "2024-03-01T09:00:00+0000",
      "attachments": {
        "data": [
          {
            "type": "share",
            "target": {"url": "https://example.com/spacex"},
            "media": {"image": {"src": "https://example.com/spacex.jpg"}}
          }
        ]
      }
    },
    {
      "id": "104_9003",
      "message": "We had a lovely lunch with the whole team today",
      "created_time": "2024-03-01T08:00:00+0000"
    },
    {
      "message": "Entry without an id is skipped"
    }
  ],
  "paging": {
    "cursors": {"before": "a", "after": "b"}
  }
}`
}

// GraphEmpty is a Graph API response with no posts.
func GraphEmpty() string {
	return `{"data": []}`
}

// GraphTokenError is the error body the Graph API returns for a bad token.
func GraphTokenError() string {
	return `{
  "error": {
    "message": "Invalid OAuth access token.",
    "type": "OAuthException",
    "code": 190
  }
}`
}

// SyncRequest is a manual trigger body with two content-worthy posts.
func SyncRequest() string {
	return `{
  "posts": [
    {
      "id": "1_100",
      "message": "Breaking: AI-powered military drone strikes target with precision",
      "created_time": "2024-01-01T00:00:00+0000"
    },
    {
      "id": "1_101",
      "message": "Watch the navy test a new submarine drone in open water",
      "link": "https://example.com/v/101",
      "created_time": "2024-01-01T01:00:00+0000"
    }
  ]
}`
}
