package dto

// UploadImageResponse returns the public URL of an uploaded image
type UploadImageResponse struct {
	URL string `json:"url" example:"/static/uploads/3f1c..._1700000000.png"`
}

// ImageCleanupRequest triggers an orphan image sweep
// @Description scope is global (every file) or recent (files created within windowMinutes)
type ImageCleanupRequest struct {
	Scope         string `json:"scope" binding:"omitempty,oneof=global recent" example:"global"`
	WindowMinutes int    `json:"windowMinutes" binding:"omitempty,min=1" example:"60"`
}

// ImageCleanupResponse summarizes a sweep
type ImageCleanupResponse struct {
	Scope      string   `json:"scope"`
	Scanned    int      `json:"scanned"`
	Referenced int      `json:"referenced"`
	Deleted    []string `json:"deleted"`
	Failed     int      `json:"failed"`
	Count      int      `json:"count"`
}
