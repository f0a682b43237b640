// Package transcript reads Telegram Desktop chat exports.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/bibaboba/internal/model"
)

var (
	// ErrNoCompanion is returned when the export carries no chat id.
	ErrNoCompanion = errors.New("transcript has no companion id")
	// ErrNotPersonalChat is returned for group chats, channels and other chat types.
	ErrNotPersonalChat = errors.New("transcript is not a personal chat")
)

const personalChat = "personal_chat"

type export struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ID       json.RawMessage `json:"id"`
	Messages []message       `json:"messages"`
}

type message struct {
	Type   string          `json:"type"`
	From   string          `json:"from"`
	FromID string          `json:"from_id"`
	Text   json.RawMessage `json:"text"`
}

type textEntity struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Open reads the export stored at path.
func Open(path string) (model.Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Transcript{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	tr, err := Read(file)
	if err != nil {
		return model.Transcript{}, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

// Read decodes an export and keeps only the companion's messages.
func Read(r io.Reader) (model.Transcript, error) {
	var exp export
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return model.Transcript{}, fmt.Errorf("decode export: %w", err)
	}
	if exp.Type != "" && exp.Type != personalChat {
		return model.Transcript{}, fmt.Errorf("%w: type %q", ErrNotPersonalChat, exp.Type)
	}
	id, err := chatID(exp.ID)
	if err != nil {
		return model.Transcript{}, err
	}

	companion := "user" + id
	messages := make([]string, 0, len(exp.Messages))
	for i, msg := range exp.Messages {
		if msg.Type != "message" || msg.FromID != companion {
			continue
		}
		text, err := flattenText(msg.Text)
		if err != nil {
			return model.Transcript{}, fmt.Errorf("message %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		messages = append(messages, text)
	}

	return model.Transcript{
		CompanionID:   companion,
		CompanionName: exp.Name,
		Messages:      messages,
	}, nil
}

// chatID accepts both numeric and string ids.
func chatID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrNoCompanion
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
			return "", fmt.Errorf("%w: invalid id %s", ErrNoCompanion, num)
		}
		return num.String(), nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return "", fmt.Errorf("%w: invalid id %s", ErrNoCompanion, string(raw))
	}
	str = strings.TrimPrefix(strings.TrimSpace(str), "user")
	if str == "" {
		return "", ErrNoCompanion
	}
	return str, nil
}

// flattenText joins plain strings and rich text entities in order.
func flattenText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	var b strings.Builder
	for _, part := range parts {
		var s string
		if err := json.Unmarshal(part, &s); err == nil {
			b.WriteString(s)
			continue
		}
		var entity textEntity
		if err := json.Unmarshal(part, &entity); err != nil {
			return "", fmt.Errorf("decode text entity: %w", err)
		}
		b.WriteString(entity.Text)
	}
	return b.String(), nil
}
