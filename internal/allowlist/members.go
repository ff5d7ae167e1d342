package allowlist

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Member is one entry of the static member list.
type Member struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// UnmarshalYAML accepts either a bare email string or an {email, name} map.
func (m *Member) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.Email = node.Value
		return nil
	}
	type plain Member
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*m = Member(p)
	return nil
}

type membersFile struct {
	Members []Member `yaml:"members"`
}

// Members is the static list shipped with the deployment, indexed by
// normalised email.
type Members struct {
	list  []Member
	index map[string]Member
}

// NewMembers indexes list. Entries without an email are dropped; for
// duplicates the first entry wins.
func NewMembers(list []Member) *Members {
	m := &Members{index: make(map[string]Member, len(list))}
	for _, member := range list {
		email := NormalizeEmail(member.Email)
		if email == "" {
			continue
		}
		if _, dup := m.index[email]; dup {
			continue
		}
		member.Email = email
		m.index[email] = member
		m.list = append(m.list, member)
	}
	return m
}

// ParseMembers reads a members YAML document.
func ParseMembers(data []byte) (*Members, error) {
	var f membersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse members: %w", err)
	}
	return NewMembers(f.Members), nil
}

// LoadMembers reads the members YAML file at path.
func LoadMembers(path string) (*Members, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read members file: %w", err)
	}
	members, err := ParseMembers(data)
	if err != nil {
		return nil, err
	}
	if members.Len() == 0 {
		return nil, errors.New("members file lists no members")
	}
	return members, nil
}

// Contains reports whether email is on the list.
func (m *Members) Contains(email string) bool {
	email = NormalizeEmail(email)
	if email == "" {
		return false
	}
	_, ok := m.index[email]
	return ok
}

// DisplayName returns the configured name for email, or "".
func (m *Members) DisplayName(email string) string {
	return m.index[NormalizeEmail(email)].Name
}

// Emails returns every normalised member email in file order.
func (m *Members) Emails() []string {
	out := make([]string, 0, len(m.list))
	for _, member := range m.list {
		out = append(out, member.Email)
	}
	return out
}

func (m *Members) Len() int {
	return len(m.list)
}
