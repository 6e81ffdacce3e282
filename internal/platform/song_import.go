package platform

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/ytget/songlist/internal/model"
)

// ErrUnsupportedFormat is returned for song files that are neither JSON nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported song file format")

// Supported song file extensions
const (
	ExtJSON = ".json"
	ExtCSV  = ".csv"
)

// Accepted date layouts for last performance dates
var DateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "2006/01/02", "2006.01.02"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// songNamespace derives stable IDs for songs imported without one
var songNamespace = uuid.MustParse("6f1c1d52-8c0e-4c38-9d3c-51d1a7b0d7e4")

// songRecord is the on-disk representation of a song
type songRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"song_name"`
	TranslatedName string          `json:"song_translated_name"`
	Remarks        string          `json:"remarks"`
	Artist         string          `json:"artist"`
	ArtworkURL     string          `json:"artwork_url"`
	Language       string          `json:"language"`
	Initial        string          `json:"initial"`
	Paid           flexBool        `json:"paid"`
	LastDate       string          `json:"last_date"`
	Count          json.RawMessage `json:"count"`
	IsLocal        flexBool        `json:"is_local"`
}

// flexBool accepts true/false, 0/1 and their quoted forms
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	v, err := parseBool(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*b = flexBool(v)
	return nil
}

// ReadTextFileContent reads a text file and returns its content as UTF-8.
// A UTF-8 BOM is stripped and content that is not valid UTF-8 is decoded
// as GBK.
func ReadTextFileContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decodeText(data, filepath.Base(path))
}

func decodeText(data []byte, name string) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		logrus.Debugf("Detected UTF-8 with BOM for %s", name)
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	logrus.Debugf("Not valid UTF-8, assuming GBK for %s", name)
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), simplifiedchinese.GBK.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as GBK: %w", name, err)
	}
	return string(decoded), nil
}

// ImportSongs reads a song list from a JSON or CSV file.
func ImportSongs(path string) ([]model.Song, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ExtJSON && ext != ExtCSV {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}

	content, err := ReadTextFileContent(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read songs file: %w", err)
	}

	var songs []model.Song
	switch ext {
	case ExtJSON:
		songs, err = ParseSongsJSON(strings.NewReader(content))
	case ExtCSV:
		songs, err = ParseSongsCSV(strings.NewReader(content))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	logrus.Infof("Imported %d songs from %s", len(songs), path)
	return songs, nil
}

// ParseSongsJSON decodes either an array of songs or an object with a
// "songs" array.
func ParseSongsJSON(r io.Reader) ([]model.Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []songRecord
	if data[0] == '{' {
		var wrapper struct {
			Songs []songRecord `json:"songs"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		records = wrapper.Songs
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	songs := make([]model.Song, 0, len(records))
	for i, rec := range records {
		count, err := parseCount(strings.Trim(string(rec.Count), `"`))
		if err != nil {
			return nil, fmt.Errorf("song %d: %w", i+1, err)
		}
		song, err := rec.toSong(count)
		if err != nil {
			return nil, fmt.Errorf("song %d: %w", i+1, err)
		}
		if song.Name == "" {
			logrus.Warnf("Skipping song %d without a name", i+1)
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// ParseSongsCSV decodes a CSV file whose header row names the columns.
// Unknown columns are ignored and song_name is required.
func ParseSongsCSV(r io.Reader) ([]model.Song, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["song_name"]; !ok {
		return nil, fmt.Errorf("missing song_name column")
	}

	var songs []model.Song
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(col string) string {
			if i, ok := columns[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		paid, err := parseBool(get("paid"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		isLocal, err := parseBool(get("is_local"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		count, err := parseCount(get("count"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := songRecord{
			ID:             get("id"),
			Name:           get("song_name"),
			TranslatedName: get("song_translated_name"),
			Remarks:        get("remarks"),
			Artist:         get("artist"),
			ArtworkURL:     get("artwork_url"),
			Language:       get("language"),
			Initial:        get("initial"),
			Paid:           flexBool(paid),
			LastDate:       get("last_date"),
			IsLocal:        flexBool(isLocal),
		}
		song, err := rec.toSong(count)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if song.Name == "" {
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func (rec songRecord) toSong(count int) (model.Song, error) {
	lastSung, err := ParseDate(rec.LastDate)
	if err != nil {
		return model.Song{}, err
	}

	song := model.Song{
		ID:             strings.TrimSpace(rec.ID),
		Name:           strings.TrimSpace(rec.Name),
		TranslatedName: strings.TrimSpace(rec.TranslatedName),
		Remarks:        strings.TrimSpace(rec.Remarks),
		Artist:         strings.TrimSpace(rec.Artist),
		ArtworkURL:     strings.TrimSpace(rec.ArtworkURL),
		Language:       strings.TrimSpace(rec.Language),
		Initial:        strings.ToUpper(strings.TrimSpace(rec.Initial)),
		Paid:           bool(rec.Paid),
		LastSung:       lastSung,
		Count:          count,
		IsLocal:        bool(rec.IsLocal),
	}
	if song.ID == "" {
		song.ID = SongID(song.Name, song.Artist)
	}
	return song, nil
}

// SongID derives a stable identifier from a song name and artist.
func SongID(name, artist string) string {
	key := strings.ToLower(strings.TrimSpace(name)) + "\x00" + strings.ToLower(strings.TrimSpace(artist))
	return uuid.NewSHA1(songNamespace, []byte(key)).String()
}

// ParseDate parses a last performance date. Empty values and placeholders
// such as "—" mean never sung.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "—" || s == "-" {
		return time.Time{}, nil
	}
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
