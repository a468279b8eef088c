package models

import "time"

// TrendingVideo is one row of a trending-list CSV export after type fixes.
type TrendingVideo struct {
	VideoID                      string     `json:"video_id"`
	VideoPublishedAt             *time.Time `json:"video_published_at"`
	VideoTrendingDate            *time.Time `json:"video_trending_date"`
	ChannelID                    string     `json:"channel_id"`
	ChannelTitle                 string     `json:"channel_title"`
	ChannelDescription           string     `json:"channel_description"`
	ChannelCustomURL             string     `json:"channel_custom_url"`
	ChannelPublishedAt           *time.Time `json:"channel_published_at"`
	ChannelCountry               string     `json:"channel_country"`
	VideoTitle                   string     `json:"video_title"`
	VideoDescription             string     `json:"video_description"`
	VideoDefaultThumbnail        string     `json:"video_default_thumbnail"`
	VideoCategoryID              string     `json:"video_category_id"`
	VideoTags                    string     `json:"video_tags"`
	VideoDuration                string     `json:"video_duration"`
	VideoDimension               string     `json:"video_dimension"`
	VideoDefinition              string     `json:"video_definition"`
	VideoLicensedContent         bool       `json:"video_licensed_content"`
	VideoViewCount               int64      `json:"video_view_count"`
	VideoLikeCount               int64      `json:"video_like_count"`
	VideoCommentCount            int64      `json:"video_comment_count"`
	ChannelViewCount             int64      `json:"channel_view_count"`
	ChannelSubscriberCount       int64      `json:"channel_subscriber_count"`
	ChannelHaveHiddenSubscribers bool       `json:"channel_have_hidden_subscribers"`
	ChannelVideoCount            int64      `json:"channel_video_count"`
	ChannelLocalizedTitle        string     `json:"channel_localized_title"`
	ChannelLocalizedDescription  string     `json:"channel_localized_description"`
	VideoTrendingCountry         string     `json:"video_trending_country"`
	Country                      string     `json:"country"`
}

// EngagementRow is the slice of a stored video the labeling job needs.
type EngagementRow struct {
	ID       int64
	Country  string
	Views    int64
	Likes    int64
	Comments int64
}

type TrendLabel struct {
	ID        int64
	WillTrend bool
}

// CountryThresholds are the per-country cut-offs a video must meet on every count.
type CountryThresholds struct {
	Country      string  `json:"country"`
	MedianViews  float64 `json:"median_views"`
	ViewsMin     float64 `json:"views_min"`
	LikesMin     float64 `json:"likes_min"`
	CommentsMin  float64 `json:"comments_min"`
	Videos       int     `json:"videos"`
	PositiveRows int     `json:"positive_rows"`
}
