package component

import (
	"sort"
	"testing"
)

func registerDummyClasses(t *testing.T) {
	t.Helper()
	for _, class := range []string{"dummy", "machine", "pcibus"} {
		RegisterComponentClass(class, NewDummy(class))
	}
}

func TestAddChildSetsParent(t *testing.T) {
	registerDummyClasses(t)
	root, err := CreateComponent("machine")
	if err != nil {
		t.Fatal(err)
	}
	child, err := CreateComponent("dummy")
	if err != nil {
		t.Fatal(err)
	}
	root.AddChild(child)
	if child.Parent() != root {
		t.Fatalf("child.Parent() = %v, want root", child.Parent())
	}
	if len(root.Children()) != 1 || root.Children()[0] != child {
		t.Fatalf("root.Children() = %v, want [child]", root.Children())
	}
}

func TestAutoNamingDoesNotRenumberOnRemoval(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	var kids []*Component
	for i := 0; i < 3; i++ {
		c, err := CreateComponent("dummy")
		if err != nil {
			t.Fatal(err)
		}
		root.AddChild(c)
		kids = append(kids, c)
	}
	if got := kids[0].Name(); got != "dummy0" {
		t.Fatalf("kids[0].Name() = %q, want dummy0", got)
	}
	if got := kids[1].Name(); got != "dummy1" {
		t.Fatalf("kids[1].Name() = %q, want dummy1", got)
	}
	if got := kids[2].Name(); got != "dummy2" {
		t.Fatalf("kids[2].Name() = %q, want dummy2", got)
	}

	root.RemoveChild(kids[0])
	if got := kids[1].Name(); got != "dummy1" {
		t.Fatalf("after removal kids[1].Name() = %q, want dummy1 (no renumbering)", got)
	}
	if got := kids[2].Name(); got != "dummy2" {
		t.Fatalf("after removal kids[2].Name() = %q, want dummy2 (no renumbering)", got)
	}
}

// TestFindPathByPartialMatchSingleMachine is scenario E1: build
// root.machine1.{pcibus0,pcibus1} and check that FindPathByPartialMatch
// returns exactly those two paths.
func TestFindPathByPartialMatchSingleMachine(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	root.SetName("root")

	m1, _ := CreateComponent("machine")
	m1.SetName("machine1")
	root.AddChild(m1)
	p1a, _ := CreateComponent("pcibus")
	m1.AddChild(p1a)
	p1b, _ := CreateComponent("pcibus")
	m1.AddChild(p1b)

	got := root.FindPathByPartialMatch("pci")
	sort.Strings(got)
	want := []string{"root.machine1.pcibus0", "root.machine1.pcibus1"}
	if len(got) != len(want) {
		t.Fatalf("FindPathByPartialMatch(\"pci\") = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("FindPathByPartialMatch(\"pci\") = %v, want %v", got, want)
		}
	}
}

// TestFindPathByPartialMatch extends E1 to two machines, checking that
// matches from a sibling subtree (machine2.pcibus0) are included too.
func TestFindPathByPartialMatch(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	root.SetName("root")

	m1, _ := CreateComponent("machine")
	m1.SetName("machine1")
	root.AddChild(m1)
	p1a, _ := CreateComponent("pcibus")
	m1.AddChild(p1a)
	p1b, _ := CreateComponent("pcibus")
	m1.AddChild(p1b)

	m2, _ := CreateComponent("machine")
	m2.SetName("machine2")
	root.AddChild(m2)
	p2a, _ := CreateComponent("pcibus")
	m2.AddChild(p2a)

	got := root.FindPathByPartialMatch("pci")
	sort.Strings(got)
	want := []string{
		"root.machine1.pcibus0",
		"root.machine1.pcibus1",
		"root.machine2.pcibus0",
	}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("FindPathByPartialMatch(\"pci\") = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("FindPathByPartialMatch(\"pci\") = %v, want %v", got, want)
		}
	}
}

func TestLookupPath(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	root.SetName("root")
	child, _ := CreateComponent("dummy")
	root.AddChild(child)

	got, ok := root.LookupPath("root.dummy0")
	if !ok || got != child {
		t.Fatalf("LookupPath(root.dummy0) = (%v, %v), want (child, true)", got, ok)
	}

	if _, ok := root.LookupPath("root.nosuch"); ok {
		t.Fatal("LookupPath(root.nosuch) unexpectedly found a component")
	}
}

func TestSetVariableValueAndLiteralRoundTrip(t *testing.T) {
	registerDummyClasses(t)
	c, err := CreateComponent("dummy")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetVariableValue("str", `"hello world"`); err != nil {
		t.Fatal(err)
	}
	v, _ := c.GetVariable("str")
	if got := v.String(); got != "hello world" {
		t.Fatalf("str = %q, want \"hello world\"", got)
	}
	if got := v.Literal(); got != `"hello world"` {
		t.Fatalf("Literal() = %q, want quoted form", got)
	}

	if err := c.SetVariableValue("u32", "42"); err != nil {
		t.Fatal(err)
	}
	v32, _ := c.GetVariable("u32")
	if got := v32.String(); got != "42" {
		t.Fatalf("u32 = %q, want 42", got)
	}
}

// TestCloneChecksumStable is scenario E2: a clone must checksum-match its
// source, including through nested children and bound variable values.
func TestCloneChecksumStable(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	root.SetName("root")
	child, _ := CreateComponent("dummy")
	_ = child.SetVariableValue("str", `"payload"`)
	_ = child.SetVariableValue("u64", "123456789")
	root.AddChild(child)

	clone, err := root.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if clone == root {
		t.Fatal("Clone() returned the same pointer as the source")
	}
	if clone.Checksum() != root.Checksum() {
		t.Fatalf("clone checksum %d != source checksum %d", clone.Checksum(), root.Checksum())
	}

	// Mutating the clone must not affect the source (independent storage).
	cloneChild := clone.Children()[0]
	_ = cloneChild.SetVariableValue("str", `"changed"`)
	if clone.Checksum() == root.Checksum() {
		t.Fatal("mutating the clone's child changed the source's checksum")
	}
	origChild, _ := child.GetVariable("str")
	if origChild.String() != "payload" {
		t.Fatalf("source mutated via clone: str = %q", origChild.String())
	}
}

func TestGeneratePath(t *testing.T) {
	registerDummyClasses(t)
	root, _ := CreateComponent("machine")
	root.SetName("root")
	child, _ := CreateComponent("dummy")
	root.AddChild(child)

	if got := root.GeneratePath(); got != "root" {
		t.Fatalf("root.GeneratePath() = %q, want root", got)
	}
	if got := child.GeneratePath(); got != "root.dummy0" {
		t.Fatalf("child.GeneratePath() = %q, want root.dummy0", got)
	}
}
