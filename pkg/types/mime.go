// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// DocKind is the normalized classification of a document's MIME type. It is
// a closed set: MIME strings outside the table collapse to KindVideo or
// KindAudio when the major type matches, and to KindUnknown otherwise.
type DocKind int

const (
	KindUnknown DocKind = iota
	KindHTML
	KindPDF
	KindDjVu
	KindSubtitle
	KindPostScript
	KindAudioMPEG
	KindAudioFLAC
	KindXML
	KindEPUB
	KindDirectory
	KindVideoMatroska
	KindEmail

	// Catch-alls for unrecognized video/* and audio/* types.
	KindVideo
	KindAudio
)

var kindByMime = map[string]DocKind{
	"text/html":              KindHTML,
	"application/pdf":        KindPDF,
	"image/vnd.djvu":         KindDjVu,
	"text/x-srt":             KindSubtitle,
	"application/postscript": KindPostScript,
	"audio/mpeg":             KindAudioMPEG,
	"application/x-flac":     KindAudioFLAC,
	"application/xml":        KindXML,
	"application/epub+zip":   KindEPUB,
	"inode/directory":        KindDirectory,
	"video/x-matroska":       KindVideoMatroska,
	"message/rfc822":         KindEmail,
}

var kindNames = map[DocKind]string{
	KindUnknown:       "unknown",
	KindHTML:          "html",
	KindPDF:           "pdf",
	KindDjVu:          "djvu",
	KindSubtitle:      "subtitle",
	KindPostScript:    "postscript",
	KindAudioMPEG:     "audio",
	KindAudioFLAC:     "audio",
	KindXML:           "xml",
	KindEPUB:          "epub",
	KindDirectory:     "directory",
	KindVideoMatroska: "video",
	KindEmail:         "email",
	KindVideo:         "video",
	KindAudio:         "audio",
}

func (k DocKind) String() string { return kindNames[k] }

// MimeType pairs the normalized kind with the raw MIME string from the
// server. Raw is kept verbatim so unknown types survive a round trip.
type MimeType struct {
	Kind DocKind
	Raw  string
}

// UnknownMime is the sentinel for a missing mtype field.
var UnknownMime = MimeType{Kind: KindUnknown, Raw: UnknownStr}

// ClassifyMime maps a raw MIME string to its MimeType.
func ClassifyMime(raw string) MimeType {
	if k, ok := kindByMime[raw]; ok {
		return MimeType{Kind: k, Raw: raw}
	}
	switch {
	case len(raw) >= 6 && raw[:6] == "video/":
		return MimeType{Kind: KindVideo, Raw: raw}
	case len(raw) >= 6 && raw[:6] == "audio/":
		return MimeType{Kind: KindAudio, Raw: raw}
	}
	return MimeType{Kind: KindUnknown, Raw: raw}
}

// String prints the normalized kind, or the raw MIME string when the kind
// is unknown.
func (m MimeType) String() string {
	if m.Kind == KindUnknown {
		return m.Raw
	}
	return m.Kind.String()
}

func (m *MimeType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = ClassifyMime(s)
	return nil
}

func (m MimeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Raw)
}
