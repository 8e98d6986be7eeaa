package gmail

import (
	"strings"
)

// meToken is the recipient entry that stands for the mailbox owner. Only a
// whole entry matches, so "me@corp.com" and "meeting@example.com" are
// addresses, not the token.
const meToken = "me"

// splitAddresses splits every entry on commas, trims the pieces and drops
// empty ones.
func splitAddresses(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		for part := range strings.SplitSeq(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// JoinAddresses trims each address, drops empty ones and joins the rest
// with ", ".
func JoinAddresses(addrs []string) string {
	return strings.Join(splitAddresses(addrs), ", ")
}

func isMe(addr string) bool {
	return strings.EqualFold(strings.TrimSpace(addr), meToken)
}

// ReferencesMe reports whether any recipient list has an entry that is the
// "me" token.
func ReferencesMe(lists ...[]string) bool {
	for _, list := range lists {
		for _, a := range splitAddresses(list) {
			if isMe(a) {
				return true
			}
		}
	}
	return false
}

// ReplaceMe returns addrs with every "me" entry replaced by self.
func ReplaceMe(addrs []string, self string) []string {
	out := splitAddresses(addrs)
	for i, a := range out {
		if isMe(a) {
			out[i] = self
		}
	}
	return out
}
