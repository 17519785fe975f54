// Command userprofiles manages users and their typed profile fields through
// the users API, and can serve a demo backend for it.
package main

func main() {
	Execute()
}
