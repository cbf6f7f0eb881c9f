package domain

// BannerAsset is a display-ready banner image.
type BannerAsset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
