package lexer

import "testing"

func TestTokenize_TextOnly(t *testing.T) {
	blocks, err := Tokenize("A", "Hello, world!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Kind != Text {
		t.Errorf("expected Text block, got %s", blocks[0].Kind)
	}
	if blocks[0].Text != "Hello, world!" {
		t.Errorf("expected 'Hello, world!', got %q", blocks[0].Text)
	}
}

func TestTokenize_Expression(t *testing.T) {
	blocks, err := Tokenize("A", "Hi <#= name #>!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[1].Kind != Expression {
		t.Errorf("expected Expression block, got %s", blocks[1].Kind)
	}
	if blocks[1].Text != "name" {
		t.Errorf("expected 'name', got %q", blocks[1].Text)
	}
}

func TestTokenize_StatementAndDirective(t *testing.T) {
	input := `<#@ template name="A" #><# for i := 0; i < 3; i++ { #>x<# } #>`
	blocks, err := Tokenize("A", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocks[0].Kind != Directive {
		t.Fatalf("expected Directive first, got %s", blocks[0].Kind)
	}
	if blocks[1].Kind != Statement {
		t.Fatalf("expected Statement second, got %s", blocks[1].Kind)
	}
	if blocks[2].Kind != Text || blocks[2].Text != "x" {
		t.Fatalf("expected Text 'x', got %s %q", blocks[2].Kind, blocks[2].Text)
	}
}

func TestTokenize_NoSpuriousTextBlocks(t *testing.T) {
	// Text on either side of a delimiter block stays in two separate
	// Text blocks (they are not adjacent), and no empty Text block is
	// introduced around the delimiter block.
	blocks, err := Tokenize("A", "ab<#= x #>cd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
}

func TestTokenize_LineTracking(t *testing.T) {
	input := "line1\nline2\n<#= x #>\nline4"
	blocks, err := Tokenize("A", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocks[1].StartLine != 3 {
		t.Errorf("expected expression on line 3, got %d", blocks[1].StartLine)
	}
}

func TestTokenize_LineTrackingCRLF(t *testing.T) {
	input := "line1\r\nline2\r\n<#= x #>"
	blocks, err := Tokenize("A", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocks[1].StartLine != 3 {
		t.Errorf("expected expression on line 3, got %d", blocks[1].StartLine)
	}
}

func TestTokenize_UnterminatedDelimiter(t *testing.T) {
	_, err := Tokenize("A", "Hi <#= name")
	if err == nil {
		t.Fatal("expected an error for unterminated delimiter")
	}
}

func TestTokenize_MemberRegion(t *testing.T) {
	input := "<#+ int x = 1; #><#+ #>"
	blocks, err := Tokenize("A", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 Member blocks, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Kind != Member {
			t.Errorf("expected Member block, got %s", b.Kind)
		}
	}
}
