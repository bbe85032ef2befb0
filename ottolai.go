// Package ottolai provides an Ottoman Turkish to modern Turkish translation engine.
//
// Ottolai resolves Arabic-script Ottoman text through a cascade of increasingly
// approximate strategies: exact phrase lookup, longest-match word mapping, AI model
// inference, and glyph-by-glyph transliteration as the guaranteed last resort. Every
// resolution produces a confidence score and a tag identifying which tier succeeded.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/ottolai"
//	    "github.com/ZaguanLabs/ottolai/cache"
//	    "github.com/ZaguanLabs/ottolai/dictionary"
//	    "github.com/ZaguanLabs/ottolai/provider"
//	)
//
//	func main() {
//	    phrases, glyphs, err := dictionary.Default()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := provider.NewScriptModel(provider.ScriptConfig{
//	        ScriptPath: "ai-training/advanced_ottoman_translator.py",
//	    })
//
//	    r := ottolai.NewResolver(phrases, glyphs,
//	        ottolai.WithModel(model),
//	        ottolai.WithCache(cache.NewInMemoryCache(3600)),
//	    )
//
//	    result := r.Resolve(context.Background(), "السلام عليكم")
//	    fmt.Println(result.TranslatedText) // Selam aleyküm
//	}
package ottolai
