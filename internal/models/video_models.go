package models

// VideoInput is the pre-trending metadata for a single video scoring request.
type VideoInput struct {
	VideoTitle       string `json:"video_title"`
	VideoDescription string `json:"video_description"`
	VideoTags        string `json:"video_tags"`
	ChannelTitle     string `json:"channel_title"`
	VideoCategory    string `json:"video_category"`
	Country          string `json:"country"`
	Subs             int64  `json:"subs"`
	Views            int64  `json:"views"`
	Vids             int64  `json:"vids"`
	Duration         int64  `json:"duration"`
}

// VideoInputRequest mirrors VideoInput with pointer fields so missing keys can be told
// apart from zero values when decoding a request body.
type VideoInputRequest struct {
	VideoTitle       *string `json:"video_title"`
	VideoDescription *string `json:"video_description"`
	VideoTags        *string `json:"video_tags"`
	ChannelTitle     *string `json:"channel_title"`
	VideoCategory    *string `json:"video_category"`
	Country          *string `json:"country"`
	Subs             *Count  `json:"subs"`
	Views            *Count  `json:"views"`
	Vids             *Count  `json:"vids"`
	Duration         *Count  `json:"duration"`
}

// MissingFields lists the JSON names of fields absent from the request, in declaration order.
func (r VideoInputRequest) MissingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("video_title", r.VideoTitle != nil)
	check("video_description", r.VideoDescription != nil)
	check("video_tags", r.VideoTags != nil)
	check("channel_title", r.ChannelTitle != nil)
	check("video_category", r.VideoCategory != nil)
	check("country", r.Country != nil)
	check("subs", r.Subs != nil)
	check("views", r.Views != nil)
	check("vids", r.Vids != nil)
	check("duration", r.Duration != nil)
	return missing
}

// Input dereferences the request. Call MissingFields first; nil fields become zero values.
func (r VideoInputRequest) Input() VideoInput {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	num := func(p *Count) int64 {
		if p == nil {
			return 0
		}
		return int64(*p)
	}
	return VideoInput{
		VideoTitle:       str(r.VideoTitle),
		VideoDescription: str(r.VideoDescription),
		VideoTags:        str(r.VideoTags),
		ChannelTitle:     str(r.ChannelTitle),
		VideoCategory:    str(r.VideoCategory),
		Country:          str(r.Country),
		Subs:             num(r.Subs),
		Views:            num(r.Views),
		Vids:             num(r.Vids),
		Duration:         num(r.Duration),
	}
}
