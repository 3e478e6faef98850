// Command bankpatch swaps audio assets embedded in a sound-bank container by
// overwriting every occurrence of each original payload in a working copy.
package main

func main() {
	execute()
}
