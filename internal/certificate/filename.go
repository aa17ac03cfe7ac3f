package certificate

import "regexp"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Filename is the file or attachment name for a certificate id. Path
// separators and other unsafe characters become underscores.
func Filename(id, ext string) string {
	return "certificate-" + unsafeFilenameChars.ReplaceAllString(id, "_") + "." + ext
}
