package dto

// UploadQueryRequest carries the validated upload metadata. The actual files
// are saved to disk by the controller before the pipeline starts.
type UploadQueryRequest struct {
	BoardToken string `validate:"required"`
	DeviceType string `validate:"required,oneof=rpi android"`
}

// PersistQueryMessage is the payload published to the persistence topic once
// the answer stream has drained. The consumer owns the listed temp files from
// this point on.
type PersistQueryMessage struct {
	BoardToken string `json:"board_token"`
	Prompt     string `json:"prompt"`
	Response   string `json:"response"`
	VideoPath  string `json:"video_path"`
	AudioPath  string `json:"audio_path"`
	FramePath  string `json:"frame_path"`
}
