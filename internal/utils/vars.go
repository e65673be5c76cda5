package utils

const DefaultBaseURL = "https://gutenberg.org/cache/epub"

const Usage = "Usage: --folder <folder_path> --files <number_of_files> --threads <number_of_threads>"

const LogOpKey = "op"
