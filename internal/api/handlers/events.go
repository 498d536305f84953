package handlers

import (
	"encoding/json"
	"log"

	"github.com/asset-hive/asset-service/internal/api/handlers/util"
	"github.com/nats-io/nats.go"
)

type AssetUploadedEvent struct {
	Action     string `json:"action"`
	BlobKey    string `json:"blob_key"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// HandleAssetUploaded returns the JetStream consumer that runs the virus
// scan for every uploaded blob.
func HandleAssetUploaded(clamAvURL string) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var payload AssetUploadedEvent
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			log.Printf("[NATS] assets.uploaded: invalid payload: %v", err)
			_ = msg.Nak()
			return
		}

		log.Printf("[NATS] Asset uploaded: %s (%s)", payload.BlobKey, payload.Filename)
		util.ScanUploadedBlob(payload.BlobKey, clamAvURL)

		_ = msg.Ack()
	}
}
