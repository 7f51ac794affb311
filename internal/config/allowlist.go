package config

import (
	"fmt"
	"strings"

	"rsvpbot/internal/ports/output"
)

var _ output.Authorizer = AllowList(nil)

// AllowList is the set of user ids allowed to create and delete events.
type AllowList map[string]struct{}

// ParseAllowList reads comma separated Discord user ids.
func ParseAllowList(s string) (AllowList, error) {
	list := AllowList{}
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !isSnowflake(id) {
			return nil, fmt.Errorf("config: ALLOWED_USER_IDS contains %q, expected digits only", id)
		}
		list[id] = struct{}{}
	}
	return list, nil
}

func (l AllowList) Allowed(userID string) bool {
	_, ok := l[userID]
	return ok
}
