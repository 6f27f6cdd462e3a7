package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/mgomes/matscript/mats"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"mats", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	engine := mats.MustNewEngine(mats.Config{})
	diags := diagnosticsForSource(engine, "x = 1;\nprint x;\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithParseError(t *testing.T) {
	engine := mats.MustNewEngine(mats.Config{})
	diags := diagnosticsForSource(engine, "x = 1;\ny = ;\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != lspSeverityError {
		t.Fatalf("expected severity 1, got %#v", first["severity"])
	}
	message, ok := first["message"].(string)
	if !ok || !strings.HasPrefix(message, "SyntaxError: ") {
		t.Fatalf("unexpected diagnostic message %#v", first["message"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 4 {
		t.Fatalf("unexpected range start %#v", start)
	}
}

func TestDiagnosticsForSourceWithTypeError(t *testing.T) {
	engine := mats.MustNewEngine(mats.Config{})
	diags := diagnosticsForSource(engine, "A = eye(2) .+ eye(3);\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	message := diags[0]["message"].(string)
	if !strings.HasPrefix(message, "TypeError: ") {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	engine := mats.MustNewEngine(mats.Config{})
	items := completionItems(globalTypes(engine, "total = 0;\nM = ones(3);\n"))
	if len(items) != len(mats.Keywords)+2 {
		t.Fatalf("unexpected completion count %d", len(items))
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		labels = append(labels, label)
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "while")
	if keyword["detail"] != "keyword" || keyword["kind"] != lspCompletionKeyword {
		t.Fatalf("unexpected keyword item %#v", keyword)
	}

	variable := findCompletionItem(t, items, "M")
	if variable["detail"] != "matrix<int> 3x3" || variable["kind"] != lspCompletionVariable {
		t.Fatalf("unexpected variable item %#v", variable)
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), new(bytes.Buffer))
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.mats",
			"text": "print y;\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) != 1 || !strings.Contains(diags[0]["message"].(string), "NameError") {
		t.Fatalf("expected a NameError diagnostic, got %#v", diags)
	}
}

func TestHandleMessageHoverShowsType(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), new(bytes.Buffer))
	server.docs["file:///tmp/test.mats"] = "weights = zeros(4);\nprint weights;\n"

	value := hoverValue(t, server, "file:///tmp/test.mats", 1, 8)
	if !strings.Contains(value, "matrix<int> 4x4") {
		t.Fatalf("expected matrix type in hover value, got %q", value)
	}

	value = hoverValue(t, server, "file:///tmp/test.mats", 1, 2)
	if !strings.Contains(value, "keyword") {
		t.Fatalf("expected keyword classification, got %q", value)
	}
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), new(bytes.Buffer))
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "workspace/symbol"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != lspErrorMethodNotFound {
		t.Fatalf("expected method not found, got %#v", messages)
	}
}

func TestServeRoundTrip(t *testing.T) {
	var in bytes.Buffer
	writeFrame(t, &in, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	writeFrame(t, &in, `{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///a.mats","text":"break;"}}}`)
	writeFrame(t, &in, `{"jsonrpc":"2.0","method":"exit"}`)

	var out bytes.Buffer
	if err := newLSPServer(&in, &out).serve(); err != nil {
		t.Fatalf("serve failed: %v", err)
	}
	got := out.String()
	if strings.Count(got, "Content-Length:") != 2 {
		t.Fatalf("expected two framed messages, got %q", got)
	}
	if !strings.Contains(got, `"hoverProvider":true`) {
		t.Fatalf("missing capabilities in %q", got)
	}
	if !strings.Contains(got, "ScopeError") {
		t.Fatalf("missing scope diagnostic in %q", got)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "x = 1;\n  total_sum += x;\n"
	if word := wordAtPosition(source, 1, 4); word != "total_sum" {
		t.Fatalf("expected total_sum, got %q", word)
	}
	if word := wordAtPosition(source, 1, 11); word != "total_sum" {
		t.Fatalf("expected word before cursor, got %q", word)
	}
	if word := wordAtPosition(source, 5, 0); word != "" {
		t.Fatalf("expected empty word past end, got %q", word)
	}
}

func hoverValue(t *testing.T, server *lspServer, uri string, line, character int) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
	})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("1"),
		Method:  "textDocument/hover",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result, ok := messages[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover result: %#v", messages[0].Result)
	}
	contents, ok := result["contents"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover contents: %#v", result["contents"])
	}
	value, ok := contents["value"].(string)
	if !ok {
		t.Fatalf("unexpected hover value: %#v", contents["value"])
	}
	return value
}

func writeFrame(t *testing.T, w *bytes.Buffer, body string) {
	t.Helper()
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n%s", len(body), body); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		itemLabel, ok := item["label"].(string)
		if ok && itemLabel == label {
			return item
		}
	}
	t.Fatalf("missing completion item %q", label)
	return nil
}
