package object

import "testing"

func TestAddSubObjectIndexesByName(t *testing.T) {
	root := New("Contract", nil)
	inner := New("Contract_deployed", nil)
	root.AddSubObject(inner)

	got, ok := root.SubObject("Contract_deployed")
	if !ok {
		t.Fatalf("expected sub-object to be found by name")
	}
	if got != inner {
		t.Errorf("expected SubObject to return the same pointer added")
	}
}

func TestSubObjectMissesUnknownName(t *testing.T) {
	root := New("Contract", nil)
	if _, ok := root.SubObject("nonexistent"); ok {
		t.Errorf("expected lookup of an absent name to fail")
	}
}

func TestSubObjectDoesNotResolveDataAsObject(t *testing.T) {
	root := New("Contract", nil)
	root.AddData(&Data{Name: "auxdata", Bytes: []byte{0xde, 0xad}})

	if _, ok := root.SubObject("auxdata"); ok {
		t.Errorf("expected a Data sub-node to not resolve as an Object")
	}
}

func TestAddSubObjectAndAddDataShareOneIndexSpace(t *testing.T) {
	root := New("Contract", nil)
	root.AddSubObject(New("Inner", nil))
	root.AddData(&Data{Name: "auxdata", Bytes: []byte{1, 2, 3}})

	if len(root.SubNodes) != 2 {
		t.Fatalf("expected 2 sub-nodes, got %d", len(root.SubNodes))
	}
	if _, ok := root.SubObject("Inner"); !ok {
		t.Errorf("expected Inner to still resolve after adding data")
	}
}
