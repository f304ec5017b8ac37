package main

import "campus-chat-app/config"

func main() {
	config.RunServer()
}
