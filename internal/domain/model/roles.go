package model

import (
	"fmt"
	"strings"
)

// Role is a semantic field the pipeline reads from a CSV column.
type Role string

// Supported roles.
const (
	RoleMins      Role = "mins"
	RoleSecs      Role = "secs"
	RoleFrames    Role = "frames"
	RoleCode      Role = "code"
	RoleTeam      Role = "team"
	RoleOutcome   Role = "outcome"
	RolePlayer    Role = "player"
	RolePSR       Role = "psr"
	RoleColormark Role = "colormark"
)

// Roles lists every role in mapping order.
var Roles = []Role{
	RoleMins, RoleSecs, RoleFrames, RoleCode,
	RoleTeam, RoleOutcome, RolePlayer, RolePSR, RoleColormark,
}

// LabelGroup pairs a label role with the group name written to the markup.
type LabelGroup struct {
	Role  Role
	Group string
}

// LabelGroups is the fixed order labels are emitted in.
var LabelGroups = []LabelGroup{
	{Role: RoleTeam, Group: "Team in Possession"},
	{Role: RoleOutcome, Group: "Shot Outcome"},
	{Role: RolePlayer, Group: "Player"},
	{Role: RolePSR, Group: "PSR"},
	{Role: RoleColormark, Group: "Colormark"},
}

// ConventionalHeaders are the PerformaSports column names each role defaults to.
var ConventionalHeaders = map[Role]string{
	RoleMins:      "Mins",
	RoleSecs:      "Secs",
	RoleFrames:    "Frames",
	RoleCode:      "Event Name",
	RoleTeam:      "Team Name",
	RoleOutcome:   "Outcome",
	RolePlayer:    "Player",
	RolePSR:       "PSR",
	RoleColormark: "Colormark",
}

// ParseRole resolves a role name, case-insensitively.
func ParseRole(name string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// RoleMap maps each role to a column name of the current table.
type RoleMap map[Role]string

// DefaultRoleMap picks, for each role, the header cell exactly matching its
// conventional name (overridden by names), falling back to the first column.
func DefaultRoleMap(header []string, names map[Role]string) RoleMap {
	m := make(RoleMap, len(Roles))
	if len(header) == 0 {
		return m
	}
	for _, role := range Roles {
		want := ConventionalHeaders[role]
		if n, ok := names[role]; ok && n != "" {
			want = n
		}
		m[role] = header[0]
		for _, h := range header {
			if h == want {
				m[role] = h
				break
			}
		}
	}
	return m
}

// Merge returns a copy of m with every non-empty entry of override applied.
func (m RoleMap) Merge(override RoleMap) RoleMap {
	out := make(RoleMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range override {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Validate checks that every role is mapped to a column present in header.
func (m RoleMap) Validate(header []string) error {
	for _, role := range Roles {
		col, ok := m[role]
		if !ok {
			return fmt.Errorf("%w: role %s is not mapped", ErrUnknownColumn, role)
		}
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s -> %q", ErrUnknownColumn, role, col)
		}
	}
	for role := range m {
		if _, err := ParseRole(string(role)); err != nil {
			return err
		}
	}
	return nil
}
