package fileio

import "fmt"

// JSONIndent is the indentation of converted JSON files.
const JSONIndent = "    "

// CSVToJSON reads src as header-keyed records and writes them to dst as a
// pretty-printed JSON array. It returns the number of records written.
func CSVToJSON(src, dst string) (int, error) {
	records, err := ReadRecords(src)
	if err != nil {
		return 0, err
	}
	if err := WriteJSON(dst, records, JSONIndent); err != nil {
		return 0, fmt.Errorf("failed to convert %s to %s: %w", src, dst, err)
	}
	return len(records), nil
}
