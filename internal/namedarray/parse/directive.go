package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"

	"github.com/sublee/namedarray/internal/codefmt"
	"github.com/sublee/namedarray/internal/lcs"
	"github.com/sublee/namedarray/internal/namedarray/accessor"
)

// DirectivePrefix marks a type declaration to derive accessors for. Options
// follow as space-separated key=value pairs:
//
//	//namedarray:derive
//	//namedarray:derive read=Get write=Ref len=Size
//	//namedarray:derive len=-
const DirectivePrefix = "//namedarray:derive"

// optionKeys are the known directive option keys in their documented order.
var optionKeys = []string{"read", "write", "len"}

// isDirective reports whether the comment is a namedarray directive.
func isDirective(c *ast.Comment) bool {
	rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// findDirective returns the directive comment in the doc comment group.
func findDirective(doc *ast.CommentGroup) (*ast.Comment, bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		if isDirective(c) {
			return c, true
		}
	}
	return nil, false
}

// parseDirective parses options of the directive comment. It collects all
// errors instead of stopping at the first error.
func (p *Parser) parseDirective(c *ast.Comment) (accessor.Methods, error) {
	methods := accessor.DefaultMethods
	rest := strings.TrimPrefix(c.Text, DirectivePrefix)

	var errs error
	seen := make(map[string]bool)
	offset := len(DirectivePrefix)
	for _, opt := range strings.Fields(rest) {
		// Point at the option itself rather than the directive.
		i := strings.Index(c.Text[offset:], opt)
		pos := c.Slash + token.Pos(offset+i)
		at := codefmt.Span(pos, pos+token.Pos(len(opt)))
		offset += i + len(opt)

		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			errs = errors.Join(errs, codefmt.Errorf(p, at, "invalid option %q; want key=value", opt))
			continue
		}

		if seen[key] {
			errs = errors.Join(errs, codefmt.Errorf(p, at, "duplicate option %q", key))
			continue
		}
		seen[key] = true

		switch key {
		case "read":
			methods.Read = value
		case "write":
			methods.Write = value
		case "len":
			if value == "-" {
				methods.Len = ""
				continue
			}
			methods.Len = value
		default:
			if suggestion, ok := lcs.Closest(key, optionKeys); ok {
				errs = errors.Join(errs, codefmt.Errorf(p, at, "unknown option %q; did you mean %q?", key, suggestion))
			} else {
				errs = errors.Join(errs, codefmt.Errorf(p, at, "unknown option %q; want one of %s", key, strings.Join(optionKeys, ", ")))
			}
			continue
		}

		if !token.IsIdentifier(value) {
			errs = errors.Join(errs, codefmt.Errorf(p, at, "option %s must be a method name; got %q", key, value))
		}
	}
	if errs != nil {
		return accessor.Methods{}, errs
	}

	if methods.Read == methods.Write || methods.Read == methods.Len || methods.Write == methods.Len {
		return accessor.Methods{}, codefmt.Errorf(p, c, "method names must be distinct; got read=%s write=%s len=%s", methods.Read, methods.Write, methods.Len)
	}
	return methods, nil
}
