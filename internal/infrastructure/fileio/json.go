package fileio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/valyala/fastjson"
	"github.com/yourusername/walkthrough/internal/domain/entity"
)

// WriteJSON truncates path and writes v. An empty indent writes compact JSON.
func WriteJSON(path string, v any, indent string) (err error) {
	var data []byte
	if indent == "" {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return fmt.Errorf("failed to encode json for %s: %w", path, err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return openErr(path, err)
	}
	defer closeWith(f, &err)

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return openErr(path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode json %s: %w", path, err)
	}
	return nil
}

// ReadUsers reads a JSON array of user objects. Missing keys read as zero
// values; an element that is not an object is an error.
func ReadUsers(path string) ([]entity.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, openErr(path, err)
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json %s: %w", path, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("%s: expected a json array: %w", path, err)
	}

	users := make([]entity.User, 0, len(items))
	for i, item := range items {
		if item.Type() != fastjson.TypeObject {
			return nil, fmt.Errorf("%s: element %d is %s, not an object", path, i, item.Type())
		}
		users = append(users, entity.User{
			Name:  string(item.GetStringBytes("name")),
			Age:   item.GetInt("age"),
			Email: string(item.GetStringBytes("email")),
		})
	}
	return users, nil
}
