// Package sitepackages maps Python distribution names onto the top-level
// directories they install into a site-packages directory.
//
// # Why not just lowercase the name?
//
// The name a distribution is published under and the directory it installs
// often differ:
//
//   - PyYAML installs yaml/
//   - beautifulsoup4 installs bs4/
//   - typing-extensions installs a module file and no directory at all
//   - protobuf installs google/ (a namespace shared with other distributions)
//
// The authoritative answer is the RECORD file in the distribution's
// <name>-<version>.dist-info directory, which lists every installed file.
// [Resolver.Resolve] reads it and keeps the first path segment of each entry
// that is a real directory on disk.
//
// # Name matching
//
// Installers write dist-info directory names with their own spelling of the
// distribution name ("Flask_SQLAlchemy-3.1.1.dist-info"), so a [Matcher]
// treats '-', '_' and '.' as interchangeable and compares letters without
// regard to case. The name must be followed by "-<digit>", which keeps
// "foo" from matching "foo_bar-1.0.dist-info".
//
// # Fallback
//
// Editable installs and some older installers leave no usable RECORD. When
// no dist-info directory yields a directory, the lowercased name with '-'
// replaced by '_' is tried as a directory name directly.
package sitepackages
