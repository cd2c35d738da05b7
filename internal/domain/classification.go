package domain

// AnalyzeRequest represents an image classification request
type AnalyzeRequest struct {
	Image    *string `json:"image"` // base64, optionally a data URL
	MimeType string  `json:"mimeType,omitempty"`
}

// ImageInput is a decoded, size- and type-checked image
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// ClassificationResult is the vision model's identification of an anime item
type ClassificationResult struct {
	Series           string `json:"series"`
	Character        string `json:"character"`
	JapaneseKeywords string `json:"japaneseKeywords"` // comma-separated
	SearchKeyword    string `json:"searchKeyword"`
	Reasoning        string `json:"reasoning"`
}

// UploadReceipt echoes metadata about an uploaded file
type UploadReceipt struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FileSize   int64  `json:"fileSize"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	AnalysisID string `json:"analysisId"`
}

// FieldType is the JSON type of a structured-output field
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldBoolean FieldType = "boolean"
)

// ResponseField describes one key of the JSON object a vision prompt must return
type ResponseField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// VisionRequest is a single image + instruction call to a vision model
type VisionRequest struct {
	Image             []byte
	MIMEType          string
	SystemInstruction string
	Prompt            string
	ResponseFields    []ResponseField
}
