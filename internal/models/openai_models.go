package models

import "encoding/json"

// OpenAISentimentReply is the JSON object the model is asked to return.
// Fields stay raw because the model is free to send any JSON type for them.
type OpenAISentimentReply struct {
	Sentiment json.RawMessage `json:"sentiment"`
	Rating    json.RawMessage `json:"rating"`
}
