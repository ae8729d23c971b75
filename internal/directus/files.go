package directus

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/google/uuid"
)

// UploadFile stores binary content in the CMS file store and returns the
// assigned file id. The application only ever keeps this reference; the CMS
// owns the bytes from here on.
func (c *Client) UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload body: %w", err)
	}

	resp, err := c.do(ctx, "POST", "/files", nil, &body, writer.FormDataContentType())
	if err != nil {
		return "", err
	}

	var uploaded struct {
		Id string `json:"id"`
	}
	if err := decodeData(resp, &uploaded); err != nil {
		return "", err
	}

	// File ids are UUIDs pointing at directus_files rows.
	if _, err := uuid.Parse(uploaded.Id); err != nil {
		return "", fmt.Errorf("cms returned malformed file id %q: %w", uploaded.Id, err)
	}

	return uploaded.Id, nil
}
