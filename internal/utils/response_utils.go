package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go-ao-staking/internal/models"
)

// FirstMessageData returns the Data of the first message, false when there is no message or it is blank
func FirstMessageData(resp *models.Response) (string, bool) {
	msg, ok := resp.First()
	if !ok || strings.TrimSpace(msg.Data) == "" {
		return "", false
	}
	return msg.Data, true
}

// DecodeMessageData decodes the JSON Data of the first message into v.
// A missing message or blank Data yields models.ErrMissingData, bad JSON models.ErrMalformedResponse.
func DecodeMessageData(resp *models.Response, v any) error {
	data, ok := FirstMessageData(resp)
	if !ok {
		return models.ErrMissingData
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	return nil
}

// TagInt returns the integer value of the first tag named name
func TagInt(tags models.Tags, name string) (int, bool, error) {
	raw, ok := tags.Get(name)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, fmt.Errorf("%w: tag %s=%q is not an integer", models.ErrMalformedResponse, name, raw)
	}
	return n, true, nil
}

// ProcessError returns the Error tag of the first message, if the process reported one
func ProcessError(resp *models.Response) (string, bool) {
	msg, ok := resp.First()
	if !ok {
		return "", false
	}
	return msg.Tags.Get(models.TagError)
}
