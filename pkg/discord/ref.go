package discord

import "strings"

// MessageRef joins a channel and message id into the opaque reference the
// application stores for a message.
func MessageRef(channelID, messageID string) string {
	return channelID + ":" + messageID
}

// SplitMessageRef is the inverse of MessageRef.
func SplitMessageRef(ref string) (channelID, messageID string, ok bool) {
	channelID, messageID, ok = strings.Cut(ref, ":")
	if !ok || channelID == "" || messageID == "" {
		return "", "", false
	}
	return channelID, messageID, true
}
