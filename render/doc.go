// Package render executes text templates against a define tree.
//
// An [Engine] parses the input template, associates every template found
// below its search directories, and executes the result with the define
// tree as data. Templates on the search path are named by their
// slash-separated path relative to the search directory and are invoked
// with the template action:
//
//	{{ template "partials/header.tmpl" . }}
//
// In addition to the text/template built-ins, templates may call functions
// for host information (env, target, platform, hostname, user, shell, cwd),
// filesystem tests (fileExists, isDir, isRegular, isSymlink), path handling
// (pathAbs, pathJoin, pathRel, pathPrefix, pathPrefixIf), value handling
// (list, join, default, toJSON, toYAML) and expr, which evaluates an
// expr-lang expression with every top-level define in scope:
//
//	{{ if expr "len(dns) > 1" }}options rotate{{ end }}
package render
