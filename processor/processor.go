// Package processor provides structured-content processing implementations.
//
// A processor splits a document into translatable text nodes, leaves the
// markup to itself, and later splices the resolved Turkish text back into
// place. The resolver stays ignorant of any document format.
package processor

import "github.com/ZaguanLabs/ottolai"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = ottolai.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = ottolai.TextNode
