package models

// UploadMeta identifies the upload a report is about.
type UploadMeta struct {
	UploadID   string `json:"uploadId"`
	Dataset    string `json:"dataset"`
	Country    string `json:"country,omitempty"`
	UploadDate string `json:"uploadDate"`
	CheckDate  string `json:"checkDate,omitempty"`
}
