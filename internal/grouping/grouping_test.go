package grouping

import (
	"reflect"
	"testing"
)

// feed runs a fresh engine over the given paragraph texts, indexing them in
// order, and returns the finalized groups.
func feed(texts []string) []*Group {
	e := NewEngine()
	for i, text := range texts {
		e.Observe(i, text)
	}
	return e.Finalize()
}

func TestEngine_NumberedSeedWithContinuations(t *testing.T) {
	groups := feed([]string{
		"  4.9 檢查完整性",
		"  並記錄結果",
		"  4.10 清洗",
	})

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}

	g := groups[0]
	if g.SeedIndex() != 0 || len(g.Members) != 2 {
		t.Fatalf("group 1 = %+v, want seed 0 with 2 members", g)
	}
	if !g.HasNumbering() {
		t.Error("group 1 should carry numbering")
	}
	// Numbered groups concatenate without separator.
	if g.MergedText != "4.9 檢查完整性並記錄結果" {
		t.Errorf("MergedText = %q, want %q", g.MergedText, "4.9 檢查完整性並記錄結果")
	}

	if groups[1].SeedIndex() != 2 || len(groups[1].Members) != 1 {
		t.Errorf("group 2 = %+v, want singleton seeded at 2", groups[1])
	}
}

func TestEngine_UnnumberedIndentedParagraphsMergeWithSpaces(t *testing.T) {
	// Scenario: two indented unnumbered paragraphs followed by a flush-left
	// closer.
	groups := feed([]string{
		"   注意事項",
		"   請小心操作",
		"結果：",
	})

	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.HasNumbering() {
		t.Error("unnumbered group reports numbering")
	}
	if g.MergedText != "注意事項 請小心操作" {
		t.Errorf("MergedText = %q, want %q", g.MergedText, "注意事項 請小心操作")
	}
	if got := []int{g.Members[0].Index, g.Members[1].Index}; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("member indices = %v, want [0 1]", got)
	}
}

func TestEngine_FlushLeftParagraphIsNeverAMember(t *testing.T) {
	groups := feed([]string{
		"4.9 無縮排的編號段落",
		"  縮排內容",
		"無縮排",
	})

	for _, g := range groups {
		for _, m := range g.Members {
			if m.IndentWidth == 0 {
				t.Errorf("group %d contains flush-left member at index %d", g.ID, m.Index)
			}
		}
	}
	// The flush-left numbered paragraph opens nothing; the indented line
	// forms a singleton.
	if len(groups) != 1 || groups[0].SeedIndex() != 1 {
		t.Fatalf("groups = %+v, want one singleton seeded at 1", groups)
	}
}

func TestEngine_TabIndentCountsAsFour(t *testing.T) {
	groups := feed([]string{"\t2.1 清洗"})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if got := groups[0].Members[0].IndentWidth; got != 4 {
		t.Errorf("IndentWidth = %d, want 4", got)
	}
}

func TestEngine_StreamEndClosesOpenGroup(t *testing.T) {
	groups := feed([]string{"  2.1 清洗", "  繼續"})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if len(groups[0].Members) != 2 {
		t.Errorf("len(Members) = %d, want 2", len(groups[0].Members))
	}
}

func TestEngine_BareNumberDoesNotSeedNumberedGroup(t *testing.T) {
	// "20 pcs" has no dot, so it must not be treated as a section number; it
	// joins the open group instead of starting one.
	groups := feed([]string{
		"  2.1 清洗",
		"  20 pcs 樣品",
	})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if len(groups[0].Members) != 2 {
		t.Errorf("len(Members) = %d, want 2", len(groups[0].Members))
	}
}

func TestEngine_Deterministic(t *testing.T) {
	texts := []string{
		"  4.9 檢查",
		"  繼續一",
		"封閉",
		"   無編號一",
		"   無編號二",
		"  4.10 清洗",
	}

	first := feed(texts)
	second := feed(texts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("grouping is not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestEngine_MemberIndicesStrictlyIncreasing(t *testing.T) {
	groups := feed([]string{
		"  1.1 一",
		"  二",
		"  三",
		"結尾",
	})
	for _, g := range groups {
		for i := 1; i < len(g.Members); i++ {
			if g.Members[i].Index <= g.Members[i-1].Index {
				t.Errorf("group %d member indices not strictly increasing: %+v", g.ID, g.Members)
			}
		}
	}
}

func TestGroup_MemberAt(t *testing.T) {
	groups := feed([]string{"  1.1 一", "  二"})
	g := groups[0]
	if m := g.MemberAt(1); m == nil || m.Text != "二" {
		t.Errorf("MemberAt(1) = %+v, want member with text 二", m)
	}
	if m := g.MemberAt(9); m != nil {
		t.Errorf("MemberAt(9) = %+v, want nil", m)
	}
}
