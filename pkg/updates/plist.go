package updates

import (
	"github.com/beevik/etree"
)

const plistDoctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// newPlistDocument creates an empty property list with the standard Apple
// prolog and returns it together with its root dictionary.
func newPlistDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(plistDoctype)
	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")
	return doc, dict
}

// plistDict returns the root dictionary of a parsed property list, creating
// it when the document has a plist root without a dict child.
func plistDict(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil {
		root = doc.CreateElement("plist")
		root.CreateAttr("version", "1.0")
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		dict = root.CreateElement("dict")
	}
	return dict
}

// plistGet returns the string value stored under key in a plist dict.
// Plist dictionaries alternate <key> and value elements; the value of a key
// is the element immediately following it.
func plistGet(dict *etree.Element, key string) (string, bool) {
	children := dict.ChildElements()
	for i, el := range children {
		if el.Tag == "key" && el.Text() == key && i+1 < len(children) {
			return children[i+1].Text(), true
		}
	}
	return "", false
}

// plistSet upserts a string value under key, preserving all unrelated
// entries. Reports whether the dictionary was modified.
func plistSet(dict *etree.Element, key, value string) bool {
	children := dict.ChildElements()
	for i, el := range children {
		if el.Tag == "key" && el.Text() == key && i+1 < len(children) {
			valEl := children[i+1]
			if valEl.Tag == "string" && valEl.Text() == value {
				return false
			}
			valEl.Tag = "string"
			valEl.SetText(value)
			return true
		}
	}
	dict.CreateElement("key").SetText(key)
	dict.CreateElement("string").SetText(value)
	return true
}

// plistDelete removes the key and its value element when present.
// Reports whether the dictionary was modified.
func plistDelete(dict *etree.Element, key string) bool {
	children := dict.ChildElements()
	for i, el := range children {
		if el.Tag == "key" && el.Text() == key {
			if i+1 < len(children) {
				dict.RemoveChild(children[i+1])
			}
			dict.RemoveChild(el)
			return true
		}
	}
	return false
}
