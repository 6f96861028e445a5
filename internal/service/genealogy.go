package service

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/jask/mlmdash/internal/database/repository"
)

// GenealogyTree builds the sponsor tree under rootID for display. depth <= 0
// means unlimited; truncated branches end in a "+N more" leaf.
func GenealogyTree(all []repository.Member, rootID string, depth int) (*tree.Tree, error) {
	var root *repository.Member
	for i := range all {
		if all[i].ID == rootID {
			root = &all[i]
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("member %s: %w", rootID, repository.ErrNotFound)
	}

	children := childrenIndex(all)
	seen := map[string]bool{}
	var build func(m repository.Member, level int) *tree.Tree
	build = func(m repository.Member, level int) *tree.Tree {
		seen[m.ID] = true
		t := tree.Root(memberLabel(m)).Enumerator(tree.RoundedEnumerator)
		kids := children[m.ID]
		if depth > 0 && level >= depth {
			if len(kids) > 0 {
				t.Child(fmt.Sprintf("+%d more", countSubtree(children, m.ID)))
			}
			return t
		}
		for _, c := range kids {
			if seen[c.ID] {
				continue
			}
			sub := build(c, level+1)
			if len(children[c.ID]) == 0 {
				t.Child(memberLabel(c))
				continue
			}
			t.Child(sub)
		}
		return t
	}
	return build(*root, 0), nil
}

func memberLabel(m repository.Member) string {
	label := fmt.Sprintf("%s · %s", m.Name, m.Rank)
	if !m.Active {
		label += " (inactive)"
	}
	return label
}

func countSubtree(children map[string][]repository.Member, id string) int {
	seen := map[string]bool{id: true}
	stack := []string{id}
	n := 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range children[cur] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			n++
			stack = append(stack, c.ID)
		}
	}
	return n
}
