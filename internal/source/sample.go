package source

// SampleName is the file name shown for the built-in sample.
const SampleName = "sample_user_manager.py"

// Sample returns the built-in demo program.
func Sample() Input {
	return Input{Name: SampleName, Text: sampleCode}
}

const sampleCode = `class UserManager:
    def __init__(self, database):
        self.database = database
        self.users = []
        self.cache = {}
    
    def create_user(self, username, email, password):
        if not username or not email:
            return False
        
        if len(password) < 8:
            return False
            
        for user in self.users:
            if user.email == email:
                return False
        
        # Complex validation logic
        if '@' not in email:
            return False
        
        if '.' not in email.split('@')[1]:
            return False
            
        # Nested conditions for password validation
        has_upper = False
        has_lower = False
        has_digit = False
        
        for char in password:
            if char.isupper():
                has_upper = True
            elif char.islower():
                has_lower = True
            elif char.isdigit():
                has_digit = True
        
        if not (has_upper and has_lower and has_digit):
            return False
            
        # More complex logic
        user_data = {
            'username': username,
            'email': email,
            'password': self.hash_password(password),
            'created_at': self.get_timestamp(),
            'is_active': True
        }
        
        try:
            self.database.insert('users', user_data)
            self.users.append(user_data)
            self.invalidate_cache()
            return True
        except Exception as e:
            self.log_error(e)
            return False
    
    def hash_password(self, password):
        # Simplified hashing
        return hash(password + "salt")
    
    def get_timestamp(self):
        import datetime
        return datetime.datetime.now()
    
    def invalidate_cache(self):
        self.cache.clear()
    
    def log_error(self, error):
        print(f"Error: {error}")
        
    def get_user_by_email(self, email):
        if email in self.cache:
            return self.cache[email]
            
        for user in self.users:
            if user['email'] == email:
                self.cache[email] = user
                return user
        return None`
