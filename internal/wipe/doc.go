// Package wipe removes directory trees quickly.
//
// It walks the tree using fastwalk for parallel traversal, unlinking every
// file and symlink as it is found and cataloguing directories by depth.
// Once the walk finishes, directories are removed one depth level at a time,
// deepest first, with every directory of a level removed concurrently.
package wipe
